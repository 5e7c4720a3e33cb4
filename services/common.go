package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
)

var ErrHttpStatus = errors.New("unexpected http status")

// HttpRequest 發送 JSON 請求並回傳 body，狀態碼 >= 400 時回傳 ErrHttpStatus
func HttpRequest(ctx context.Context, client *http.Client, method, url string, header map[string]string, data interface{}) ([]byte, error) {

	var body io.Reader

	// 序列化參數
	if data != nil {
		requestBody, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(requestBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	// 初始化 client
	if client == nil {
		client = http.DefaultClient
	}

	req.Header.Set("Content-Type", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 讀取 body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return respBody, fmt.Errorf("%w: %s %s -> %d", ErrHttpStatus, method, url, resp.StatusCode)
	}
	return respBody, nil
}

func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}
