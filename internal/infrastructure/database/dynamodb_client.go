package database

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ConnectDynamoDB creates a DynamoDB client.
//
// Local-friendly settings:
//   - region defaults to AWS_REGION, then us-east-1
//   - endpoint (e.g. http://dynamodb:8000) switches to static credentials from
//     AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY, defaulting to "local"
func ConnectDynamoDB(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := NewAWSConfig(ctx, region, endpoint, dynamodb.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("dynamodb config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// NewAWSConfig loads the shared AWS config. When endpoint is set, requests for serviceID are sent
// there and the default credential chain is replaced with static credentials.
func NewAWSConfig(ctx context.Context, region, endpoint, serviceID string) (aws.Config, error) {
	if region == "" {
		region = getenvDefault("AWS_REGION", "us-east-1")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	if endpoint != "" {
		// Local emulators do not validate credentials, but the AWS SDK requires them.
		creds := credentials.NewStaticCredentialsProvider(
			getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			"",
		)
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == serviceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts,
			config.WithCredentialsProvider(creds),
			config.WithEndpointResolverWithOptions(resolver),
		)
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
