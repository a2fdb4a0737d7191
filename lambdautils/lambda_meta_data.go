package lambdautils

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LambdaMetaData stores details about the current lambda context.
type LambdaMetaData struct {
	FunctionName    string
	FunctionVersion string
	LogGroupName    string
	LogStreamName   string
	MemoryLimitInMB int
	Context         *lambdacontext.LambdaContext
}

// GetLambdaMetaData returns MetaData extracted from the current lambda context.
func GetLambdaMetaData(ctx context.Context) LambdaMetaData {
	lm := LambdaMetaData{
		FunctionName:    lambdacontext.FunctionName,
		FunctionVersion: lambdacontext.FunctionVersion,
		LogGroupName:    lambdacontext.LogGroupName,
		LogStreamName:   lambdacontext.LogStreamName,
		MemoryLimitInMB: lambdacontext.MemoryLimitInMB,
	}

	lm.Context, _ = lambdacontext.FromContext(ctx)
	return lm
}

// InLambda reports whether ctx came from a lambda invocation.
func (lm LambdaMetaData) InLambda() bool {
	return lm.Context != nil
}

// Fields renders the metadata as log fields. Empty values are left out.
func (lm LambdaMetaData) Fields() []zap.Field {
	var fields []zap.Field

	add := func(key, value string) {
		if value != "" {
			fields = append(fields, zap.String(key, value))
		}
	}

	add("function", lm.FunctionName)
	add("version", lm.FunctionVersion)
	add("log_stream", lm.LogStreamName)

	if lm.Context != nil {
		add("function_arn", lm.Context.InvokedFunctionArn)
	}

	return fields
}

// RequestID returns the aws request id of the invocation, or a new random id
// when ctx is not a lambda context.
func RequestID(ctx context.Context) string {
	if lctx, ok := lambdacontext.FromContext(ctx); ok && lctx.AwsRequestID != "" {
		return lctx.AwsRequestID
	}

	return uuid.NewString()
}

// Logger returns base annotated with the metadata fields and the request id.
func Logger(ctx context.Context, base *zap.Logger) *zap.Logger {
	fields := append(GetLambdaMetaData(ctx).Fields(), zap.String("request_id", RequestID(ctx)))
	return base.With(fields...)
}
