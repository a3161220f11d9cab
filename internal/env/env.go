package env

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load applies each dotenv file in order, later files winning over earlier ones.
// Variables already set in the process environment are left alone; missing or
// malformed files are skipped.
func Load(paths ...string) {
	pre := map[string]struct{}{}
	for _, e := range os.Environ() {
		if i := strings.IndexByte(e, '='); i > 0 {
			pre[e[:i]] = struct{}{}
		}
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		vars, err := godotenv.Read(p)
		if err != nil {
			continue
		}
		for k, v := range vars {
			if _, ok := pre[k]; ok {
				continue
			}
			_ = os.Setenv(k, v)
		}
	}
}

func Parse(r io.Reader) (map[string]string, error) {
	return godotenv.Parse(r)
}
