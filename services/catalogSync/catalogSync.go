package catalogSync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"nutriplan-go-worker/models"
	"nutriplan-go-worker/structs"
)

type CatalogApplier interface {
	ApplyCatalogChange(ctx context.Context, event structs.CatalogQueueParam) structs.Result[structs.StatisticModel]
}

type ActivityRecorder interface {
	InsertActivityLog(ctx context.Context, entity *models.ActivityLog) error
}

// CatalogSyncService 處理 meal-catalog queue 的一則訊息
type CatalogSyncService struct {
	applier  CatalogApplier
	recorder ActivityRecorder
	logger   *logrus.Entry
	param    structs.CatalogQueueParam
	Errors   []structs.ErrorModel
}

func NewCatalogSyncService(applier CatalogApplier, recorder ActivityRecorder, logger *logrus.Entry) *CatalogSyncService {
	return &CatalogSyncService{applier: applier, recorder: recorder, logger: logger}
}

// Handle 解析訊息並套用；回傳 error 代表訊息應重新排入佇列
func (c *CatalogSyncService) Handle(ctx context.Context, queue string, body []byte) error {
	c.Errors = nil
	var param structs.CatalogQueueParam
	if err := json.Unmarshal(body, &param); err != nil {
		// 格式錯誤的訊息重送也不會成功，直接丟棄
		c.logger.WithFields(logrus.Fields{"task": "catalog-sync", "queue": queue, "error_message": err.Error()}).Error("無法解析訊息")
		return nil
	}
	// 檢查queue是否正確
	if param.QueueType != "" && param.QueueType != queue {
		c.logger.WithFields(logrus.Fields{"task": "catalog-sync", "task_id": param.TaskID, "queue": queue, "queue_type": param.QueueType}).Warn("[MismatchQueue]queue發生錯誤")
		return nil
	}
	return c.Start(ctx, param)
}

// Start 處理資料的主要進入點
func (c *CatalogSyncService) Start(ctx context.Context, param structs.CatalogQueueParam) error {
	c.param = param
	logwr := c.logger.WithFields(logrus.Fields{"task": "catalog-sync", "task_id": param.TaskID, "event": param.Event, "meal_id": param.MealID})
	logwr.Info("開始同步餐點")

	result := c.applier.ApplyCatalogChange(ctx, param)
	if result.IsError() {
		c.Errors = append(c.Errors, structs.ErrorModel{MealID: param.MealID, ErrorMessage: result.Message})
		logwr.WithField("error_message", result.Message).Error("同步失敗")
	} else {
		logwr.WithFields(logrus.Fields{"total_rows": result.Value.TotalRows, "ok_rows": result.Value.OKRows}).Info("同步完成")
	}

	if err := c.insertActivityLog(ctx, result.Value); err != nil {
		logwr.WithField("error_message", err.Error()).Warn("寫入 activity log 失敗")
	}
	if len(c.Errors) != 0 {
		return fmt.Errorf("catalog sync %s %s: %s", param.Event, param.MealID, c.Errors[0].ErrorMessage)
	}
	return nil
}

// 塞入執行紀錄的 log table
func (c *CatalogSyncService) insertActivityLog(ctx context.Context, statistic structs.StatisticModel) error {
	var activityLogJSONModel structs.ActivityLogJsonModel
	activityLogJSONModel.Type = c.param.Event
	activityLogJSONModel.MealID = c.param.MealID
	activityLogJSONModel.Result = len(c.Errors) == 0
	activityLogJSONModel.Statistic = statistic
	if activityLogJSONModel.Result {
		activityLogJSONModel.Message = "ok"
	} else {
		activityLogJSONModel.Message = c.Errors[0].ErrorMessage
		activityLogJSONModel.Messages = c.Errors
	}
	activityLogJSON, _ := json.Marshal(activityLogJSONModel)

	insertTime := time.Now()
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.LogName = "schedule.go.catalog"
	activityLogEntity.Description = "餐點目錄同步"
	activityLogEntity.SubjectID = c.param.MealID
	activityLogEntity.SubjectType = "meal"
	activityLogEntity.Properties = string(activityLogJSON)

	return c.recorder.InsertActivityLog(ctx, &activityLogEntity)
}
