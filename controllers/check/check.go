package check

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/services/rabbitmq"
	"nutriplan-go-worker/services/trackLog"

	"github.com/gin-gonic/gin"
)

type AliveResponse struct {
	Success  bool      `json:"success"`
	Messsage string    `json:"message"`
	Info     CheckInfo `json:"info"`
}

type CheckInfo struct {
	Queues     []string `json:"queue"`
	RoutineNum int      `json:"routine_num"`
}

func CheckAlive(c *gin.Context) {
	rabbitConn := rabbitmq.GetConnection(enums.CatalogQueue)
	resMsg := "main thread alive"
	checkInfo := CheckInfo{}
	//檢查mq實體是否在連線池
	if rabbitConn != nil {
		// 檢查mq連線
		if rabbitConn.Conn == nil || rabbitConn.Conn.IsClosed() {
			resMsg = "Api detect Connection lost, Reconnecting.."
			trackLog.Error(resMsg, false)
			if err := rabbitConn.Reconnect(); err != nil {
				resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
				trackLog.Error(resMsg, false)
			}
		}
		//檢查mq channel
		if rabbitConn.Channel != nil {
			for _, q := range rabbitConn.Queues {
				//檢查每一個queue
				queue, queueErr := rabbitConn.Channel.QueueInspect(q)
				if queueErr != nil {
					resMsg = fmt.Sprintf("Queue[%s] error: %s\n", q, queueErr.Error())
					trackLog.Error(resMsg, false)
				} else {
					// queue的狀態
					queueJson, _ := json.Marshal(queue)
					checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
					trackLog.Info(fmt.Sprintf("Queue[%s]: %s\n", q, queueJson), false)
				}
			}
		} else {
			resMsg = "Channel get fail"
			trackLog.Error(resMsg, false)
		}
	} else {
		resMsg = "Get connection pool fail"
		trackLog.Error(resMsg, false)
	}

	// 檢查gorutine數目
	checkInfo.RoutineNum = runtime.NumGoroutine()
	trackLog.Info(fmt.Sprintf("goroutine number: %d\n", checkInfo.RoutineNum), false)

	c.JSON(http.StatusOK, AliveResponse{true, resMsg, checkInfo})
}
