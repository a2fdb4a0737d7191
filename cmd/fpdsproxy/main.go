// Command fpdsproxy is the lambda function serving the FPDS search endpoint.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prognoshealth/fpdsproxy/app"
)

func main() {
	a, err := app.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fpdsproxy: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = a.Logger.Sync() }()

	lambda.Start(a.Handle)
}
