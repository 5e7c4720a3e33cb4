package log

import (
	"fmt"
	"net"
	"os"
	"path"
	"time"

	"nutriplan-go-worker/models"
	"nutriplan-go-worker/utils"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const hookSource = "nutriplan-golang-worker"

type LogService struct{}

// LoggerInit 建立每個使用者（或 worker 內部角色）各自的 log 檔
func (l *LogService) LoggerInit(userEntity models.User) *logrus.Logger {
	now := time.Now()
	logFilePath := logDir()
	logFilePath = path.Join(logFilePath, now.Format("2006-01-02"))
	if err := os.MkdirAll(logFilePath, 0777); err != nil {
		fmt.Println(err.Error())
	}
	fileName := path.Join(logFilePath, userEntity.ID+".log")

	logger := logrus.New()

	//写入文件
	src, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("err", err)
	} else {
		logger.Out = src
	}

	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if utils.EnvConfig.Log.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{utils.EnvConfig.Log.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else {
			hook, err := elogrus.NewAsyncElasticHook(client, hookSource, logrus.DebugLevel, utils.EnvConfig.Log.ElkIndex)
			if err != nil {
				logger.Debug(err.Error())
			} else {
				logger.Hooks.Add(hook)
			}
		}
	}

	if utils.EnvConfig.Log.LogstashEnable == 1 {
		conn, err := net.Dial("udp", utils.EnvConfig.Log.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hookSource, "index": utils.EnvConfig.Log.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}

// Entry 回傳帶有使用者欄位的 logger
func (l *LogService) Entry(userEntity models.User, task string) *logrus.Entry {
	return l.LoggerInit(userEntity).WithFields(logrus.Fields{"task": task, "name": userEntity.Name, "user_id": userEntity.ID})
}

func logDir() string {
	if utils.EnvConfig.Log.Dir != "" {
		return utils.EnvConfig.Log.Dir
	}
	if dir, err := os.Getwd(); err == nil {
		return path.Join(dir, "logs")
	}
	return "logs"
}
