package storage

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/logbase-dev/atsignal/pkg/ctx"
)

type S3Storage struct {
	Client *s3.Client
	s      *Storage
}

func newS3(s *Storage) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(s.Region),
		awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(s.AccessKey, s.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		Client: client,
		s:      s,
	}, nil
}

func (p *S3Storage) PutObject(ctx *ctx.Context, objectName string, file *multipart.FileHeader, contentType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fullPath := getFullPath(p.s.BasePath, objectName)
	_, err = p.Client.PutObject(ctx.GetCtx(), &s3.PutObjectInput{
		Bucket:      aws.String(p.s.Bucket),
		Key:         aws.String(fullPath),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return fullPath, nil
}

func (p *S3Storage) GetObject(ctx *ctx.Context, objectName string) ([]byte, error) {
	fullPath := getFullPath(p.s.BasePath, objectName)
	out, err := p.Client.GetObject(ctx.GetCtx(), &s3.GetObjectInput{
		Bucket: aws.String(p.s.Bucket),
		Key:    aws.String(fullPath),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *S3Storage) Delete(ctx *ctx.Context, objectName string) error {
	fullPath := getFullPath(p.s.BasePath, objectName)
	_, err := p.Client.DeleteObject(ctx.GetCtx(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.s.Bucket),
		Key:    aws.String(fullPath),
	})
	if err != nil {
		// 对象不存在视为删除成功
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil
		}
		return err
	}
	return nil
}
