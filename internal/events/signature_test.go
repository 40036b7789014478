package events

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestSignAndVerify(t *testing.T) {
	body := []byte(`{"email":"a@x.com"}`)

	sig := Sign("secret", body)

	assert.Equal(t, true, Verify("secret", body, sig))
	assert.Equal(t, false, Verify("secret", body, "bogus"))
	assert.Equal(t, false, Verify("other", body, sig))
}

func TestVerifyWithoutKeyAcceptsEverything(t *testing.T) {
	assert.Equal(t, true, Verify("", []byte("anything"), ""))
	assert.Equal(t, true, Verify("", []byte("anything"), "whatever"))
}

func TestFrequencyInterval(t *testing.T) {
	assert.Equal(t, 24*time.Hour, FrequencyInterval("daily"))
	assert.Equal(t, 7*24*time.Hour, FrequencyInterval("weekly"))
	assert.Equal(t, 24*time.Hour, FrequencyInterval("whatever"))
}
