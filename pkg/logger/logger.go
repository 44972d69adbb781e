package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	appConfig "lolbrowser/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	charmlog "github.com/charmbracelet/log"
)

// ErrNoLogFile is returned by the file operations of a console logger.
var ErrNoLogFile = errors.New("logger is not backed by a file")

// Logger that we will use to save our logs.
type NewLogger struct {
	mu       sync.Mutex
	log      *charmlog.Logger
	logFile  *os.File
	filePath string
}

// Create the log instance with a temporary file.
func CreateLogger() (*NewLogger, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	return &NewLogger{
		log:      newCharmLogger(f),
		logFile:  f,
		filePath: f.Name(),
	}, nil
}

// Create a logger that only writes to the given writer, usually the terminal.
func NewConsoleLogger(w io.Writer) *NewLogger {
	return &NewLogger{log: newCharmLogger(w)}
}

func newCharmLogger(w io.Writer) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           charmlog.DebugLevel,
	})
}

// Path of the backing file, empty for console loggers.
func (l *NewLogger) FilePath() string {
	return l.filePath
}

// Log a simple info.
func (l *NewLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Infof(format, args...)
}

// Log a warning.
func (l *NewLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Warnf(format, args...)
}

// Log a error.
func (l *NewLogger) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.Errorf(format, args...)
}

// Clean the file contents.
func (l *NewLogger) CleanFile() error {
	if l.logFile == nil {
		return ErrNoLogFile
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cleanFileLocked()
}

func (l *NewLogger) cleanFileLocked() error {
	if err := l.logFile.Truncate(0); err != nil {
		return err
	}
	_, err := l.logFile.Seek(0, 0)
	return err
}

// Close the backing file, if any.
func (l *NewLogger) Close() error {
	if l.logFile == nil {
		return nil
	}
	return l.logFile.Close()
}

// Upload the log to a s3 bucket.
func (l *NewLogger) UploadToS3Bucket(ctx context.Context, bucket appConfig.BucketConfiguration, objectKey string) error {
	if l.logFile == nil {
		return ErrNoLogFile
	}

	// Held until the file is truncated, lines logged meanwhile go after it.
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	// Get the config.
	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	// Create the client.
	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if bucket.Endpoint != "" {
			o.BaseEndpoint = aws.String(bucket.Endpoint)
			o.UsePathStyle = true
		}
	})

	// Run the put.
	_, err := s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	return l.cleanFileLocked()
}
