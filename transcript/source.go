// Package transcript reads line paired reference and hypothesis
// transcripts from local files, stdin, Amazon S3, or Google Cloud Storage.
package transcript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"google.golang.org/api/option"
)

// Location is a parsed transcript URI.
type Location struct {
	Scheme string // "", "s3", or "gs"
	Bucket string
	Key    string // Object key, or the file path when Scheme is ""
}

// Parse splits uri into a Location. Anything without an s3:// or gs://
// prefix is a local path, and "-" is stdin.
func Parse(uri string) (Location, error) {
	for _, scheme := range []string{"s3", "gs"} {
		prefix := scheme + "://"
		if !strings.HasPrefix(uri, prefix) {
			continue
		}
		rest := strings.TrimPrefix(uri, prefix)
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Location{}, fmt.Errorf("Expected %sbucket/key instead of: %v", prefix, uri)
		}
		return Location{scheme, parts[0], parts[1]}, nil
	}
	if uri == "" {
		return Location{}, fmt.Errorf("Empty transcript path")
	}
	return Location{Key: uri}, nil
}

func (l Location) String() string {
	if l.Scheme == "" {
		return l.Key
	}
	return l.Scheme + "://" + l.Bucket + "/" + l.Key
}

// Opener opens transcripts. CredentialsPath is a directory holding the
// AWS shared "credentials" and "config" files and the GCP service account
// key "gcp.json".
type Opener struct {
	CredentialsPath string
	Stdin           io.Reader
}

// Open returns a reader for the transcript at uri. The caller closes it.
func (o Opener) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	loc, err := Parse(uri)
	if err != nil {
		return nil, err
	}
	switch loc.Scheme {
	case "s3":
		return o.openS3(ctx, loc)
	case "gs":
		return o.openGCS(ctx, loc)
	}
	if loc.Key == "-" {
		stdin := o.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.NopCloser(stdin), nil
	}
	return os.Open(loc.Key)
}

func (o Opener) openS3(ctx context.Context, loc Location) (io.ReadCloser, error) {
	const (
		keyName    = "credentials"
		configName = "config"
	)
	opts := session.Options{SharedConfigState: session.SharedConfigEnable}
	if o.CredentialsPath != "" {
		opts.SharedConfigFiles = []string{
			path.Join(o.CredentialsPath, keyName),
			path.Join(o.CredentialsPath, configName),
		}
	}
	s, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, err
	}
	client := s3.New(s, aws.NewConfig().WithMaxRetries(3))
	out, err := client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", loc, err)
	}
	return out.Body, nil
}

// gcsReader closes the storage client along with the object reader.
type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r gcsReader) Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func (o Opener) openGCS(ctx context.Context, loc Location) (io.ReadCloser, error) {
	const keyName = "gcp.json"
	var opts []option.ClientOption
	if o.CredentialsPath != "" {
		credentialsFile := path.Join(o.CredentialsPath, keyName)
		if _, err := os.Stat(credentialsFile); err == nil {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	r, err := client.Bucket(loc.Bucket).Object(loc.Key).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%v: %w", loc, err)
	}
	return gcsReader{r, client}, nil
}

// Lines yields the lines of r one at a time, without their line endings.
type Lines struct {
	r      *bufio.Reader
	err    error
	last   string
	unread bool
}

func NewLines(r io.Reader) *Lines {
	return &Lines{r: bufio.NewReader(r)}
}

// Next returns the next line, or false at the end of input or on error.
func (l *Lines) Next() (string, bool) {
	if l.unread {
		l.unread = false
		return l.last, true
	}
	if l.err != nil {
		return "", false
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		l.err = err
		if line == "" {
			return "", false
		}
	}
	line = strings.TrimSuffix(line, "\n")
	l.last = strings.TrimSuffix(line, "\r")
	return l.last, true
}

// Unread pushes the line last returned by Next back, so the following call
// to Next returns it again.
func (l *Lines) Unread() {
	l.unread = true
}

// Err is the first read error other than io.EOF.
func (l *Lines) Err() error {
	if l.err == io.EOF {
		return nil
	}
	return l.err
}
