package artifact

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const DefaultDir = "./models"

// Source opens a named artifact.
type Source interface {
	Open(name string) (io.ReadCloser, error)
	String() string
}

type dirSource struct {
	dir string
}

func NewDirSource(dir string) Source {
	return &dirSource{dir: dir}
}

func (d *dirSource) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.dir, name))
}

func (d *dirSource) String() string {
	return "dir:" + d.dir
}

type s3Source struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Source reads credentials from AWS_REGION, AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY.
func NewS3Source(bucket, prefix string) (Source, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewS3SourceFromClient(s3.New(sess), bucket, prefix), nil
}

func NewS3SourceFromClient(client s3iface.S3API, bucket, prefix string) Source {
	return &s3Source{client: client, bucket: bucket, prefix: prefix}
}

func (s *s3Source) Open(name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Join(s.prefix, name)),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", name, err)
	}
	return out.Body, nil
}

func (s *s3Source) String() string {
	return "s3://" + path.Join(s.bucket, s.prefix)
}

// NewSourceFromEnv picks the S3 bucket named by ARTIFACT_S3_BUCKET when set,
// otherwise the local ARTIFACT_DIR (default ./models).
func NewSourceFromEnv() (Source, error) {
	if bucket := os.Getenv("ARTIFACT_S3_BUCKET"); bucket != "" {
		return NewS3Source(bucket, os.Getenv("ARTIFACT_S3_PREFIX"))
	}

	dir := os.Getenv("ARTIFACT_DIR")
	if dir == "" {
		dir = DefaultDir
	}
	return NewDirSource(dir), nil
}
