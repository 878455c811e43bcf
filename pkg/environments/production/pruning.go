package production

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"regexp"
	"strconv"

	"github.com/pelletier/go-toml"
	"go.uber.org/zap"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
)

// PruningPolicy selects how much historical state the node keeps.
type PruningPolicy int

const (
	PruningDefault PruningPolicy = iota + 1
	PruningNothing
	PruningEverything
)

func (p PruningPolicy) String() string {
	switch p {
	case PruningDefault:
		return "default"
	case PruningNothing:
		return "nothing"
	case PruningEverything:
		return "everything"
	default:
		return "unknown"
	}
}

// Pruning interval bounds, [min, max).
const (
	MinPruningInterval = 11
	MaxPruningInterval = 97
	// PruningKeepRecent is the number of recent states kept by the everything policy.
	PruningKeepRecent = "10000"
)

// app.toml keys
const (
	keyPruning           = "pruning"
	keyPruningKeepRecent = "pruning-keep-recent"
	keyPruningInterval   = "pruning-interval"
)

// IntervalPrimes lists the primes in [MinPruningInterval, MaxPruningInterval).
func IntervalPrimes() []int {
	var primes []int
	for n := MinPruningInterval; n < MaxPruningInterval; n++ {
		if isPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

type substitution struct {
	key    string
	marker string
	value  string
}

// Change is one key rewritten in app.toml.
type Change struct {
	Key   string
	Value string
}

// PruningConfigurator edits the pruning keys of a freshly initialized app.toml.
// A key is only touched while it still holds the value `cored init` wrote, so
// applying the same policy twice changes nothing the second time.
type PruningConfigurator struct {
	logger *logging.ColoredLogger
	intN   func(n int) int
	dryRun bool
}

// NewPruningConfigurator creates a configurator using math/rand for the interval.
func NewPruningConfigurator(logger *logging.ColoredLogger, dryRun bool) *PruningConfigurator {
	return &PruningConfigurator{
		logger: logger,
		intN:   rand.Intn,
		dryRun: dryRun,
	}
}

// WithRand replaces the random source. intN must return a value in [0, n).
func (pc *PruningConfigurator) WithRand(intN func(n int) int) *PruningConfigurator {
	pc.intN = intN
	return pc
}

// Interval picks a prime pruning interval uniformly from IntervalPrimes.
func (pc *PruningConfigurator) Interval() int {
	primes := IntervalPrimes()
	return primes[pc.intN(len(primes))]
}

func (pc *PruningConfigurator) substitutions(policy PruningPolicy) []substitution {
	switch policy {
	case PruningNothing:
		return []substitution{
			{key: keyPruning, marker: "default", value: "nothing"},
		}
	case PruningEverything:
		return []substitution{
			{key: keyPruning, marker: "default", value: "custom"},
			{key: keyPruningKeepRecent, marker: "0", value: PruningKeepRecent},
			{key: keyPruningInterval, marker: "0", value: strconv.Itoa(pc.Interval())},
		}
	default:
		return nil
	}
}

// Apply rewrites path for policy and returns the keys that changed.
func (pc *PruningConfigurator) Apply(path string, policy PruningPolicy) ([]Change, error) {
	subs := pc.substitutions(policy)
	if len(subs) == 0 {
		pc.logger.ComponentDebug(logging.ComponentPruning, "Keeping default pruning settings")
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if pc.dryRun && errors.Is(err, fs.ErrNotExist) {
			pc.logger.ComponentInfo(logging.ComponentPruning, "[dry-run] would set pruning policy",
				zap.String("policy", policy.String()), zap.String("config", path))
			return nil, nil
		}
		return nil, errs.WrapCode(err, errs.CodeConfig, fmt.Sprintf("cannot read config file %s", path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapCode(err, errs.CodeConfig, fmt.Sprintf("cannot read config file %s", path))
	}

	current, perr := currentValues(data)
	if perr != nil {
		pc.logger.ComponentWarn(logging.ComponentPruning, "Config is not valid TOML, falling back to text substitution",
			zap.String("config", path), zap.Error(perr))
	}

	var changes []Change
	for _, s := range subs {
		if current != nil && current(s.key) != s.marker {
			continue
		}
		var ok bool
		data, ok = replaceValue(data, s)
		if ok {
			changes = append(changes, Change{Key: s.key, Value: s.value})
		}
	}

	if len(changes) == 0 {
		pc.logger.ComponentDebug(logging.ComponentPruning, "Pruning settings already customized, nothing to change")
		return nil, nil
	}

	if pc.dryRun {
		pc.logger.ComponentInfo(logging.ComponentPruning, "[dry-run] would update "+path, zap.Any("changes", changes))
		return changes, nil
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return nil, errs.WrapCode(err, errs.CodePermissionDenied, fmt.Sprintf("cannot write config file %s", path))
	}

	for _, c := range changes {
		pc.logger.ComponentInfo(logging.ComponentPruning, "Updated app.toml",
			zap.String("key", c.Key), zap.String("value", c.Value))
	}
	return changes, nil
}

// currentValues parses data and returns a lookup of top-level string values.
func currentValues(data []byte) (func(key string) string, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return func(key string) string {
		switch v := tree.Get(key).(type) {
		case string:
			return v
		case int64:
			return strconv.FormatInt(v, 10)
		default:
			return ""
		}
	}, nil
}

// replaceValue rewrites the first `key = "marker"` line, leaving the rest of
// the file byte for byte.
func replaceValue(data []byte, s substitution) ([]byte, bool) {
	re := regexp.MustCompile(`(?m)^([ \t]*` + regexp.QuoteMeta(s.key) + `[ \t]*=[ \t]*)"` + regexp.QuoteMeta(s.marker) + `"`)
	loc := re.FindSubmatchIndex(data)
	if loc == nil {
		return data, false
	}
	out := make([]byte, 0, len(data)+len(s.value))
	out = append(out, data[:loc[3]]...)
	out = append(out, '"')
	out = append(out, s.value...)
	out = append(out, '"')
	out = append(out, data[loc[1]:]...)
	return out, true
}
