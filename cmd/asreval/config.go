package main

import (
	"os"
	"os/user"
	"path"
	"strconv"
)

const (
	keysEnv    = "ASREVAL_KEYS"
	addrEnv    = "ASREVAL_ADDR"
	workersEnv = "ASREVAL_WORKERS"
)

// defaultKeys is the credentials directory for s3:// and gs:// transcripts.
func defaultKeys() string {
	if keys := envStr(keysEnv, ""); keys != "" {
		return keys
	}
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return path.Join(usr.HomeDir, ".aws")
}

func envStr(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
