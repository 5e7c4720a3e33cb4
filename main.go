package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"nutriplan-go-worker/database"
	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/router"
	"nutriplan-go-worker/services/cache"
	"nutriplan-go-worker/services/catalog"
	"nutriplan-go-worker/services/catalogSync"
	"nutriplan-go-worker/services/dailymenu"
	"nutriplan-go-worker/services/rabbitmq"
	"nutriplan-go-worker/services/remote"
	"nutriplan-go-worker/services/repository"
	"nutriplan-go-worker/services/trackLog"
	"nutriplan-go-worker/utils"

	logLib "nutriplan-go-worker/services/log"

	"github.com/streadway/amqp"
)

var (
	store *cache.GormStore
	repo  *repository.Repository
	// 限制同時處理的訊息數量
	jobProcessChan chan struct{}
)

func main() {

	// 初始化 env
	var envService utils.EnvService
	envService.InitEnv()
	fmt.Println("參數初始化成功...")

	database.InitDatabasePool()
	trackLog.LogTrackInit()
	store = cache.NewGormStore(database.Mysql)
	insertActivityLog("schedule.go.job.init", "nutriplan-worker 初始化")

	defer func() {

		// 發送 ELK
		var userEntity models.User
		userEntity.ID = "main"
		userEntity.Name = "主程式"
		var logService logLib.LogService
		logwr := logService.Entry(userEntity, "main")
		logwr.Error("worker shutdown")

		database.Mysql.Close()
		fmt.Println("worker shutdown")
	}()

	repo = buildRepository()
	concurrent := utils.EnvConfig.ConcurrentAmount
	if concurrent <= 0 {
		concurrent = 1
	}
	jobProcessChan = make(chan struct{}, concurrent)

	route := router.Router(repo)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := route.Run(fmt.Sprintf(":%d", utils.EnvConfig.Router.Port)); err != nil {
			trackLog.Error(err.Error(), true)
		}
	}()

	wg.Add(1)
	go CatalogQueue()

	wg.Wait()
}

func buildRepository() *repository.Repository {
	config := utils.EnvConfig

	remoteStore, err := remote.NewElasticStore(config.Elasticsearch.URL, config.Elasticsearch.IndexPrefix)
	failOnError(err, "Failed to create elasticsearch client")

	recipes := catalog.NewClient(config.Catalog.BaseURL, time.Duration(config.Catalog.Timeout)*time.Second)

	var userEntity models.User
	userEntity.ID = "daily-menu"
	userEntity.Name = "菜單同步"
	var logService logLib.LogService
	logwr := logService.Entry(userEntity, "daily-menu")

	menu := dailymenu.New(store, logwr,
		dailymenu.WithLegacyDeleteVerify(config.DailyMenu.LegacyDeleteVerify),
		dailymenu.WithVerifyDelay(time.Duration(config.DailyMenu.VerifyDelayMs)*time.Millisecond),
	)
	return repository.New(store, remoteStore, recipes, menu, logwr)
}

func CatalogQueue() {
	queue := utils.EnvConfig.RabbitMQ.Queue
	conn := rabbitmq.NewConnection(enums.CatalogQueue, []string{queue})

	if err := conn.Connect(); err != nil {
		panic(err)
	}
	if err := conn.BindQueue(); err != nil {
		panic(err)
	}
	deliveries, err := conn.Consume()
	if err != nil {
		panic(err)
	}

	for q, d := range deliveries {
		go conn.HandleConsumedDeliveries(q, d, CatalogHandler)
	}
	log.Printf(" [ %s ] Waiting for messages. To exit press CTRL+C", queue)
}

func CatalogHandler(c rabbitmq.Connection, q string, deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		jobProcessChan <- struct{}{}
		trackLog.Info(fmt.Sprintf("Queue[%s] 接受資料: %s\n", q, string(d.Body)), true)

		go func(d amqp.Delivery) {
			defer func() { <-jobProcessChan }()

			var userEntity models.User
			userEntity.ID = "catalog-sync"
			userEntity.Name = "餐點目錄同步"
			var logService logLib.LogService
			service := catalogSync.NewCatalogSyncService(repo, store, logService.Entry(userEntity, "catalog-sync"))

			err := service.Handle(context.Background(), q, d.Body)
			if err != nil {
				trackLog.Error(err.Error(), true)
			}
			if ackErr := rabbitmq.Settle(d, err); ackErr != nil {
				trackLog.Error(ackErr.Error(), true)
			}
		}(d)
	}
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}

// 塞入執行紀錄的 log table
func insertActivityLog(jobname string, data interface{}) {

	activityLogJSON, _ := json.Marshal(data)

	insertTime := time.Now()
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.LogName = jobname
	activityLogEntity.Description = "golang-worker log"
	activityLogEntity.Properties = string(activityLogJSON)

	if err := store.InsertActivityLog(context.Background(), &activityLogEntity); err != nil {
		trackLog.Logger().WithField("error_message", err.Error()).Warn("寫入 activity log 失敗")
	}
}
