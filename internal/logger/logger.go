package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// Init инициализирует структурированный логгер.
func Init(level string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON для production, текстовый формат включается отдельно для development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter устанавливает текстовый формат логов (для development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

// L возвращает логгер, безопасный для использования до Init.
// До инициализации все записи уходят в io.Discard — это позволяет
// вызывать пакеты клиента из тестов без настройки логирования.
func L() *logrus.Logger {
	if Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return Log
}
