package estimator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGateway struct {
	date  string
	err   error
	calls int
}

func (f *fakeGateway) EstimateHarvestDate(ctx context.Context, cropName, sowingDate, location string) (string, error) {
	f.calls++
	return f.date, f.err
}

func TestResolver_UsesGatewayDate(t *testing.T) {
	r := NewResolver(&fakeGateway{date: "2024-05-15"})
	got := r.Resolve(context.Background(), "wheat", "2024-01-01", "Pune")
	assert.Equal(t, "2024-05-15", got)
}

func TestResolver_FallsBackOnGatewayError(t *testing.T) {
	r := NewResolver(&fakeGateway{err: errors.New("boom")})
	got := r.Resolve(context.Background(), "wheat", "2024-01-01", "Pune")
	assert.Equal(t, "2024-04-30", got)
}

func TestResolver_FallsBackOnUnusableDate(t *testing.T) {
	r := NewResolver(&fakeGateway{date: "sometime in spring"})
	got := r.Resolve(context.Background(), "wheat", "2024-01-01", "Pune")
	assert.Equal(t, "2024-04-30", got)
}

func TestResolver_FallsBackOnEmptyDate(t *testing.T) {
	r := NewResolver(&fakeGateway{date: ""})
	got := r.Resolve(context.Background(), "rice", "2024-06-01", "Pune")
	assert.Equal(t, "2024-10-09", got)
}

func TestResolver_NilGateway(t *testing.T) {
	r := NewResolver(nil)
	got := r.Resolve(context.Background(), "cotton", "2024-06-01", "Nagpur")
	// 160 days from 2024-06-01.
	assert.Equal(t, "2024-11-08", got)
}

func TestResolver_EmptyInputs(t *testing.T) {
	gw := &fakeGateway{date: "2024-05-15"}
	r := NewResolver(gw)
	assert.Equal(t, "", r.Resolve(context.Background(), "", "2024-01-01", ""))
	assert.Equal(t, "", r.Resolve(context.Background(), "wheat", "", ""))
	assert.Zero(t, gw.calls, "gateway must not be called without both inputs")
}
