package lambdautils

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func prepareContext(fn, v, alias string) context.Context {
	lambdacontext.FunctionName = fn
	lambdacontext.FunctionVersion = v
	lambdacontext.LogGroupName = "logGroupName-test"
	lambdacontext.LogStreamName = "logStreamName-test"
	lambdacontext.MemoryLimitInMB = 100

	arn := []string{"arn:aws:lambda:us-east-1:xxxxx:function", fn}
	if alias != "" {
		arn = append(arn, alias)
	}

	lctx := lambdacontext.LambdaContext{
		AwsRequestID:       "c6af9ac6-7b61-11e6-9a41-93e8deadbeef",
		InvokedFunctionArn: strings.Join(arn, ":"),
	}
	return lambdacontext.NewContext(context.Background(), &lctx)
}

func clearContext() {
	lambdacontext.FunctionName = os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
	lambdacontext.FunctionVersion = os.Getenv("AWS_LAMBDA_FUNCTION_VERSION")
	lambdacontext.LogGroupName = os.Getenv("AWS_LAMBDA_LOG_GROUP_NAME")
	lambdacontext.LogStreamName = os.Getenv("AWS_LAMBDA_LOG_STREAM_NAME")
	if limit, err := strconv.Atoi(os.Getenv("AWS_LAMBDA_FUNCTION_MEMORY_SIZE")); err != nil {
		lambdacontext.MemoryLimitInMB = 0
	} else {
		lambdacontext.MemoryLimitInMB = limit
	}
}

func TestLambdaMetaData(t *testing.T) {
	// lambdacontext keeps the function details in package variables.
	defer clearContext()

	cases := []struct {
		fn          string
		v           string
		alias       string
		expectedArn string
	}{
		{"fname", "1", "PRODUCTION", "arn:aws:lambda:us-east-1:xxxxx:function:fname:PRODUCTION"},
		{"fname", "$LATEST", "$LATEST", "arn:aws:lambda:us-east-1:xxxxx:function:fname:$LATEST"},
		{"fname", "2", "DEV", "arn:aws:lambda:us-east-1:xxxxx:function:fname:DEV"},
		{"fname", "4", "", "arn:aws:lambda:us-east-1:xxxxx:function:fname"},
		{"fname2", "3", "PRODUCTION", "arn:aws:lambda:us-east-1:xxxxx:function:fname2:PRODUCTION"},
	}

	for _, c := range cases {
		ctx := prepareContext(c.fn, c.v, c.alias)
		meta := GetLambdaMetaData(ctx)

		assert.Equal(t, c.fn, meta.FunctionName)
		assert.Equal(t, c.v, meta.FunctionVersion)
		assert.Equal(t, 100, meta.MemoryLimitInMB)
		assert.Equal(t, "logGroupName-test", meta.LogGroupName)
		assert.Equal(t, "logStreamName-test", meta.LogStreamName)
		assert.Equal(t, c.expectedArn, meta.Context.InvokedFunctionArn)
	}
}

func TestLambdaMetaData_Fields(t *testing.T) {
	defer clearContext()

	meta := GetLambdaMetaData(prepareContext("fpds-proxy", "7", "live"))

	assert.True(t, meta.InLambda())
	assert.Equal(t, []zap.Field{
		zap.String("function", "fpds-proxy"),
		zap.String("version", "7"),
		zap.String("log_stream", "logStreamName-test"),
		zap.String("function_arn", "arn:aws:lambda:us-east-1:xxxxx:function:fpds-proxy:live"),
	}, meta.Fields())
}

func TestLambdaMetaData_Fields_outsideLambda(t *testing.T) {
	meta := LambdaMetaData{}

	assert.False(t, meta.InLambda())
	assert.Empty(t, meta.Fields())
}

func TestRequestID(t *testing.T) {
	defer clearContext()

	assert.Equal(t, "c6af9ac6-7b61-11e6-9a41-93e8deadbeef", RequestID(prepareContext("fn", "1", "")))

	generated := RequestID(context.Background())
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.NotEqual(t, generated, RequestID(context.Background()))
}

func TestLogger(t *testing.T) {
	defer clearContext()

	core, logs := observer.New(zapcore.InfoLevel)

	Logger(prepareContext("fpds-proxy", "7", ""), zap.New(core)).Info("searching")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "fpds-proxy", fields["function"])
	assert.Equal(t, "c6af9ac6-7b61-11e6-9a41-93e8deadbeef", fields["request_id"])
}
