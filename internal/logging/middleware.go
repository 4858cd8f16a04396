package logging

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// Middleware creates a LogData for every request, makes it reachable through
// logging.GetLogData, and emits a single structured entry once the handler
// chain completes.
func Middleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataContextKey{}, logData))
		endTimer()

		logData.AddData("status", ctx.Status())

		operationName := "Unknown"
		if op := ctx.Operation(); op != nil && op.OperationID != "" {
			operationName = op.OperationID
		}
		logData.Log().Infof("Handler.%v.Complete", operationName)
	}
}
