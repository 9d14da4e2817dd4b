package roster

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envRe = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`) // Searching for environment variables to substitute.

// Load reads a yaml peer roster, substituting ${ENV} references before
// parsing. Missing step and throttle fall back to the defaults the wire
// sequence expects (step 2, 1s throttle).
func Load(path string) (Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, err
	}
	b = envRe.ReplaceAllFunc(b, func(m []byte) []byte {
		k := string(envRe.FindSubmatch(m)[1])
		return []byte(os.Getenv(k))
	})

	var r Roster
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Roster{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(r.Peers) == 0 {
		return Roster{}, fmt.Errorf("%s: empty roster", path)
	}
	for i := range r.Peers {
		p := &r.Peers[i]
		if p.Name == "" {
			return Roster{}, fmt.Errorf("%s: peer %d has no name", path, i)
		}
		if strings.Contains(p.Name, ":") {
			return Roster{}, fmt.Errorf("%s: peer name %q contains a colon", path, p.Name)
		}
		if p.Step == 0 {
			p.Step = 2
		}
		if p.ThrottleMs == 0 {
			p.ThrottleMs = 1000
		}
	}
	return r, nil
}
