package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/gea-verde/gea-api/internal/config"
)

// S3Client stores receipt photos and catalog images and hands back the
// public URL persisted on the owning row.
type S3Client struct {
	client *s3.S3
	bucket string
}

func NewS3Client(conf *config.S3Config) (*S3Client, error) {
	awsConf := &aws.Config{
		Region: aws.String(conf.Region),
		Credentials: credentials.NewStaticCredentials(
			conf.AccessKeyID,
			conf.SecretAccessKey,
			"",
		),
	}

	// A custom endpoint means MinIO in local development.
	if conf.Endpoint != "" {
		awsConf.Endpoint = aws.String(conf.Endpoint)
		awsConf.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, fmt.Errorf("session.NewSession -> %w", err)
	}

	return &S3Client{
		client: s3.New(sess),
		bucket: conf.Bucket,
	}, nil
}

func (c *S3Client) Upload(key string, file multipart.File, contentType string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	_, err := c.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("c.client.PutObject -> %w", err)
	}

	return c.objectURL(key), nil
}

func (c *S3Client) Delete(key string) error {
	_, err := c.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("c.client.DeleteObject -> %w", err)
	}

	return nil
}

func (c *S3Client) objectURL(key string) string {
	endpoint := aws.StringValue(c.client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")

		return fmt.Sprintf("http://%s/%s/%s", endpoint, c.bucket, key)
	}

	region := aws.StringValue(c.client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
