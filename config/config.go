package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	MYSQL_DSN          = ""           // MySQL will be used if this is set
	SQLITE_FILE        = "catalog.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS       = "0.0.0.0:8080"
	TLS_DOMAINS        = "" // e.g. "example.com,example2.com"
	TMP_DIR            = "/tmp" // Used as local scratch space for S3 buckets
	DEFAULT_BUCKET_DIR = ""     // Used for creating the initial image bucket
	MAX_UPLOAD_MB      = 20     // Maximum accepted image upload size
	DEBUG_MODE         = true
)

func init() {
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
