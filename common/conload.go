// conload.go
// Purpose: Loader for the "-- key value" .con files. Each Case matches one
// key (case-insensitive) and stores its value into a destination.
package common

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

type Case interface {
	apply(key, val string)
}

type caseFunc func(key, val string)

func (f caseFunc) apply(key, val string) { f(key, val) }

// ConLoad reads file and feeds every entry to cases. A missing file is
// logged and leaves all destinations untouched.
func ConLoad(file string, cases ...Case) {
	f, err := os.Open(file)
	if err != nil {
		log.Printf("conload: unable to open config file %s", file)
		return
	}
	defer f.Close()

	if err := ConRead(f, cases...); err != nil {
		log.Printf("conload: %s: %v", file, err)
	}
}

// ConRead is ConLoad on an already opened reader.
func ConRead(r io.Reader, cases ...Case) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()

		if !strings.HasPrefix(line, "--") {
			continue
		}

		rest := strings.TrimSpace(strings.TrimPrefix(line, "--"))
		if rest == "" {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) < 2 {
			continue
		}

		key := fields[0]
		val := fields[1]

		for _, c := range cases {
			c.apply(key, val)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan config: %w", err)
	}
	return nil
}

// ConVal parses the value with a scanf verb into dest.
func ConVal(key string, dest any, scanfFmt string) Case {
	return caseFunc(func(k, v string) {
		if !strings.EqualFold(k, key) {
			return
		}
		if _, err := fmt.Sscanf(v, scanfFmt, dest); err != nil {
			log.Printf("conload: bad value %q for %s: %v", v, key, err)
		}
	})
}

// ConEnum maps the value onto one of matches. Unknown values are ignored.
func ConEnum[T any](key string, dest *T, matches ...EnumMatch[T]) Case {
	return caseFunc(func(k, v string) {
		if !strings.EqualFold(k, key) {
			return
		}
		for _, m := range matches {
			if strings.EqualFold(v, m.name) {
				*dest = m.value
				return
			}
		}
		log.Printf("conload: no match for %s = %q", key, v)
	})
}

type EnumMatch[T any] struct {
	name  string
	value T
}

func ConMatch[T any](name string, value T) EnumMatch[T] {
	return EnumMatch[T]{name: name, value: value}
}
