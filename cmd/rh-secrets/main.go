package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cheddar/hoodbot/pkg/config"
	"github.com/cheddar/hoodbot/pkg/secretstore"
)

func main() {
	var (
		inPath    = flag.String("in", ".env", "input .env file path")
		dbPath    = flag.String("badger", getenv(config.EnvSecretDB, "data/secrets"), "badger secrets db path")
		secretKey = flag.String("secret-key", getenv(config.EnvSecretKey, ""), "badger encryption key (32 bytes base64/hex)")
		prefix    = flag.String("prefix", "env/", "key prefix for entries other than the credentials")
		list      = flag.Bool("list", false, "list stored keys and exit")
	)
	flag.Parse()

	keyBytes, err := secretstore.ParseKey(*secretKey)
	if err != nil {
		fatal(err)
	}
	if keyBytes == nil {
		fatal(fmt.Errorf("secret key is required: set %s or pass -secret-key", config.EnvSecretKey))
	}

	ss, err := secretstore.Open(secretstore.OpenOptions{Path: *dbPath, EncryptionKey: keyBytes})
	if err != nil {
		fatal(err)
	}
	defer ss.Close()

	if *list {
		keys, err := ss.Keys()
		if err != nil {
			fatal(err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return
	}

	kv, err := godotenv.Read(*inPath)
	if err != nil {
		fatal(err)
	}

	written, err := importEnv(ss, kv, *prefix)
	if err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "imported %d entries into %s (prefix %s)\n", written, *dbPath, *prefix)
}

// importEnv stores the credentials under their well-known keys and every
// other entry under prefix.
func importEnv(ss *secretstore.Store, kv map[string]string, prefix string) (int, error) {
	written := 0
	user, pass := kv[config.EnvUsername], kv[config.EnvPassword]
	if user != "" && pass != "" {
		if err := ss.SetCredentials(user, pass); err != nil {
			return written, err
		}
		written += 2
	}

	keys := make([]string, 0, len(kv))
	for k := range kv {
		if k == config.EnvUsername || k == config.EnvPassword || k == config.EnvSecretKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ss.SetString(prefix+k, kv[k]); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
