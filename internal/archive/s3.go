package archive

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Putter writes objects to S3.
type S3Putter struct {
	svc *s3.S3
}

// NewS3Putter creates an S3 client from the default credential chain. An
// empty region falls back to the environment/shared-config region.
func NewS3Putter(region string) (*S3Putter, error) {
	cfg := aws.Config{}
	if region != "" {
		cfg.Region = aws.String(region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            cfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}
	return &S3Putter{svc: s3.New(sess)}, nil
}

// Put uploads one object.
func (p *S3Putter) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := p.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}
