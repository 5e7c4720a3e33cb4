package trackLog

import (
	"fmt"

	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/log"

	"github.com/sirupsen/logrus"
)

var logTracker *logrus.Entry

func LogTrackInit() {
	var userEntity models.User
	userEntity.ID = "tracker"
	userEntity.Name = "log追蹤"
	var trackerService log.LogService
	logTracker = trackerService.Entry(userEntity, "track")
}

// Logger 給各 service 共用；尚未初始化時退回 stdout
func Logger() *logrus.Entry {
	if logTracker == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logTracker
}

func Info(message string, needWriteLog bool) {
	if needWriteLog {
		Logger().Info(message)
	}
	fmt.Println(message)
}

func Warn(message string, needWriteLog bool) {
	if needWriteLog {
		Logger().Warn(message)
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog {
		Logger().Error(message)
	}
	fmt.Println(message)
}
