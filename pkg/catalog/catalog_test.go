package catalog

import (
	"fmt"
	"testing"

	"github.com/bramerlabs/lifttime/pkg/flight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_OrderAndBounds(t *testing.T) {
	c := Default()
	names := c.Names()
	require.Equal(t, c.Len(), len(names))
	require.NotEmpty(t, names)

	assert.Equal(t, "MN5008 KV170", names[0], "catalog order is insertion order")
	assert.Equal(t, "U15XXL KV29", names[len(names)-1])

	for _, n := range names {
		spec, err := c.Lookup(n)
		require.NoError(t, err)
		assert.Positive(t, spec.ThrustKg, n)
		assert.Positive(t, spec.MotorMassKg, n)
		assert.NotContains(t, n, " (", "keys must stay label-safe")
	}
}

func TestLookup_NotFound(t *testing.T) {
	_, err := Default().Lookup("NONEXISTENT")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMotorNotFound)

	_, err = Default().Label("NONEXISTENT")
	assert.ErrorIs(t, err, ErrMotorNotFound)
}

func TestLabel_RoundTrip_AllEntries(t *testing.T) {
	c := Default()
	for _, name := range c.Names() {
		label, err := c.Label(name)
		require.NoError(t, err)
		t.Logf("%-16s -> %s", name, label)
		assert.Equal(t, name, ParseLabel(label), "label must parse back to the exact key")
	}
}

func TestParseLabel_LastSeparatorWins(t *testing.T) {
	// a hypothetical label whose thrust text itself is preceded by another
	// " (" must still split on the last occurrence
	assert.Equal(t, "X (prototype)", ParseLabel("X (prototype) (4 kgf)"))
	assert.Equal(t, "plain name", ParseLabel("plain name"))
	assert.Equal(t, "", ParseLabel(" (4 kgf)"))
}

func TestNew_RejectsBadEntries(t *testing.T) {
	good := flight.MotorSpec{ThrustKg: 4, MotorMassKg: 0.3}

	_, err := New([]Entry{{"", good}})
	assert.ErrorIs(t, err, ErrBadName)

	_, err = New([]Entry{{"X (proto", good}})
	assert.ErrorIs(t, err, ErrBadName, "keys containing \" (\" would break round-trips")

	_, err = New([]Entry{{"A", good}, {"A", good}})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = New([]Entry{{"A", flight.MotorSpec{ThrustKg: 0, MotorMassKg: 0.3}}})
	assert.ErrorIs(t, err, ErrBadSpec)
}

func TestEntries_MatchesNames(t *testing.T) {
	c := Default()
	entries := c.Entries()
	names := c.Names()
	require.Len(t, entries, len(names))
	for i, e := range entries {
		assert.Equal(t, names[i], e.Name)
		spec, err := c.Lookup(e.Name)
		require.NoError(t, err)
		assert.Equal(t, spec, e.Spec)
	}
}

func ExampleParseLabel() {
	c := Default()
	label, _ := c.Label("MN8012 KV100")
	fmt.Println(label, "->", ParseLabel(label))
	// Output: MN8012 KV100 (11.8 kgf) -> MN8012 KV100
}
