package config

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/internal/label"
	"labelprint/internal/label/render"
	dErrors "labelprint/pkg/domain-errors"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"PRINTNODE_API_KEY":    "key",
		"PRINTNODE_PRINTER_ID": "73104",
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(validEnv()))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "json", cfg.Server.LogFormat)
	assert.Equal(t, label.PolicyAlphanumeric, cfg.Label.Policy)
	assert.Equal(t, label.NumericMaxLength, cfg.Label.NumericMaxLength)
	assert.Equal(t, "degrade", cfg.Label.OnOverflow)
	assert.Equal(t, "https://api.printnode.com", cfg.PrintNode.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.PrintNode.Timeout)
	assert.Equal(t, int64(73104), cfg.PrintNode.PrinterID)

	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, label.StrategyReject, p.Strategy)

	o, err := cfg.OverflowPolicy()
	require.NoError(t, err)
	assert.Equal(t, render.OverflowDegrade, o)
}

func TestFromLookupNumericPolicy(t *testing.T) {
	for _, bound := range []int{label.NumericMaxLength, label.NumericMaxLengthStrict} {
		env := validEnv()
		env["LABEL_POLICY"] = "numeric"
		env["LABEL_NUMERIC_MAX_LENGTH"] = strconv.Itoa(bound)

		cfg, err := FromLookup(lookupFrom(env))
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		p, err := cfg.Policy()
		require.NoError(t, err)
		assert.Equal(t, bound, p.MaxLength)
		assert.Equal(t, label.StrategyStrip, p.Strategy)
	}
}

func TestMissingCredentials(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{}))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
	assert.Contains(t, dErrors.MessageOf(err), "PRINTNODE_API_KEY is required")
	assert.Contains(t, dErrors.MessageOf(err), "PRINTNODE_PRINTER_ID must be > 0")

	assert.NoError(t, cfg.ValidateLocal(), "rendering does not need PrintNode")
}

func TestMalformedValues(t *testing.T) {
	tests := map[string]string{
		"PRINTNODE_PRINTER_ID":     "printer-1",
		"PRINTNODE_TIMEOUT":        "soon",
		"LABEL_NUMERIC_MAX_LENGTH": "ten",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			env := validEnv()
			env[key] = value

			_, err := FromLookup(lookupFrom(env))
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
			assert.Contains(t, dErrors.MessageOf(err), key)
		})
	}
}

func TestInvalidChoices(t *testing.T) {
	tests := map[string]string{
		"LABEL_POLICY":             "barcode",
		"LABEL_ON_OVERFLOW":        "shrink",
		"LOG_FORMAT":               "xml",
		"LABEL_NUMERIC_MAX_LENGTH": "4",
		"PRINTNODE_BASE_URL":       "not a url",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			env := validEnv()
			env[key] = value

			cfg, err := FromLookup(lookupFrom(env))
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
			assert.Contains(t, dErrors.MessageOf(err), key)
		})
	}
}

func TestNumericMaxLengthUpperBound(t *testing.T) {
	env := validEnv()
	env["LABEL_POLICY"] = "numeric"
	env["LABEL_NUMERIC_MAX_LENGTH"] = "1001"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)

	err = cfg.ValidateLocal()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfiguration))
	assert.Equal(t, "LABEL_NUMERIC_MAX_LENGTH must be <= 64", dErrors.MessageOf(err))

	env["LABEL_NUMERIC_MAX_LENGTH"] = "64"
	cfg, err = FromLookup(lookupFrom(env))
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateLocal())
	p, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, 64, p.MaxLength)
}

func TestBlankValuesUseDefaults(t *testing.T) {
	env := validEnv()
	env["LABELPRINT_ADDR"] = "   "

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestPrintNodeClientConfig(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(validEnv()))
	require.NoError(t, err)

	pc := cfg.PrintNodeClientConfig()
	assert.Equal(t, "key", pc.APIKey)
	assert.Equal(t, int64(73104), pc.PrinterID)
	assert.Equal(t, 15*time.Second, pc.Timeout)
}
