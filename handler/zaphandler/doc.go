// Package zaphandler lets an nlogstream logger write through an existing
// zap pipeline.
//
//	zl, _ := zap.NewProduction()
//	log := logger.NewBuilder().WithHandler(zaphandler.FromLogger(zl)).Build()
//	log.InfoStream().Append("ready after ").Append(elapsed).Append(stream.EndLine)
package zaphandler
