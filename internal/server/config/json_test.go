package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseJson(t *testing.T) {

	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	content := `{
		"database_dsn": "postgres://u:p@db:5432/fk",
		"redis_addr": "redis:6379",
		"redis_password": "pw",
		"redis_db": 2,
		"session_ttl": "12h",
		"storage_backend": "s3",
		"storage_path": "/var/blobs",
		"s3_root_user": "minio",
		"s3_root_password": "secret",
		"s3_bucket": "bkt",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/"
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	if c.DatabaseDSN != "postgres://u:p@db:5432/fk" {
		t.Errorf("unexpected DSN: %s", c.DatabaseDSN)
	}
	if c.RedisAddr != "redis:6379" || c.RedisPassword != "pw" || c.RedisDB != 2 {
		t.Error("unexpected redis settings")
	}
	if c.SessionTTL != 12*time.Hour {
		t.Errorf("expected 12h, got %v", c.SessionTTL)
	}
	if c.StorageBackend != StorageBackendS3 {
		t.Errorf("unexpected backend: %s", c.StorageBackend)
	}
	if c.S3RootUser != "minio" || c.S3Bucket != "bkt" {
		t.Error("unexpected S3 settings")
	}
}

func TestParseJson_NoFile(t *testing.T) {

	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	if c.SessionTTL != 24*time.Hour {
		t.Errorf("defaults should be untouched, got %v", c.SessionTTL)
	}
}
