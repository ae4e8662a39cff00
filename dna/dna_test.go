// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dna

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	d := New("my app")
	require.Equal(t, "my app", d.Name)
	require.Equal(t, DnaSpecVersion, d.DnaSpecVersion)
	require.NotEmpty(t, d.UUID)
	require.JSONEq(t, "{}", string(d.Properties))
	require.Equal(t, 0, d.Zomes.Len())
}

func TestParseAppliesDefaultsForAbsentFields(t *testing.T) {
	d, err := Parse([]byte(`{"name": "test"}`))
	require.NoError(t, err)
	require.Equal(t, "test", d.Name)
	require.Equal(t, DnaSpecVersion, d.DnaSpecVersion)
	require.NotEmpty(t, d.UUID)
}

func TestParseRejectsTypeMismatch(t *testing.T) {
	_, err := Parse([]byte(`{"name": 42}`))
	require.Error(t, err)
}

func TestGetEntryTypeDef(t *testing.T) {
	d := New("test")
	z := NewZome()
	z.EntryTypes.Set("bar", EntryTypeDef{Description: "a bar entry"})
	d.Zomes.Set("zome", z)

	_, ok := d.GetEntryTypeDef("foo")
	require.False(t, ok)

	def, ok := d.GetEntryTypeDef("bar")
	require.True(t, ok)
	require.Equal(t, "a bar entry", def.Description)
}

func TestGetZomeNameForAppEntryTypeFirstMatchWins(t *testing.T) {
	d := New("test")
	z1 := NewZome()
	z1.EntryTypes.Set("shared", EntryTypeDef{})
	z2 := NewZome()
	z2.EntryTypes.Set("shared", EntryTypeDef{})
	d.Zomes.Set("a_zome", z1)
	d.Zomes.Set("b_zome", z2)

	// Duplicate entry types across zomes are rejected at parse time, but
	// constructing a DNA in memory bypasses that check; lookups still
	// resolve deterministically to the first zome in definition order.
	name, ok := d.GetZomeNameForAppEntryType("shared")
	require.True(t, ok)
	require.Equal(t, "a_zome", name)
}

func TestGetCapabilityAndWasm(t *testing.T) {
	d := New("test")
	z := NewZome()
	z.Capabilities.Set("public", Capability{Membrane: "public", FnDeclarations: []string{"hello"}})
	z.Code = Wasm{Code: []byte{0x00, 0x61, 0x73, 0x6d}}
	d.Zomes.Set("zome1", z)

	cap, err := d.GetCapabilityByZomeName("zome1", "public")
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, cap.FnDeclarations)

	_, err = d.GetCapabilityByZomeName("missing", "public")
	require.ErrorIs(t, err, ErrZomeNotFound)

	_, err = d.GetCapabilityByZomeName("zome1", "missing")
	require.ErrorIs(t, err, ErrCapabilityNotFound)

	code, ok := d.GetWasm("zome1")
	require.True(t, ok)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d}, code)
}

func TestParseRejectsDuplicateAppEntryType(t *testing.T) {
	doc := `{
		"name": "dup",
		"zomes": {
			"a": {"entry_types": {"shared": {"description": "a"}}},
			"b": {"entry_types": {"shared": {"description": "b"}}}
		}
	}`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
}

func TestParseAllowsSystemEntryTypeInEveryZome(t *testing.T) {
	doc := `{
		"name": "shared-system-types",
		"zomes": {
			"a": {"entry_types": {"LinkAdd": {"description": "a"}, "Deletion": {"description": "a"}}},
			"b": {"entry_types": {"LinkAdd": {"description": "b"}, "Deletion": {"description": "b"}}}
		}
	}`
	_, err := Parse([]byte(doc))
	require.NoError(t, err)
}

func TestHashStableAcrossEqualCanonicalForm(t *testing.T) {
	d1, err := Parse([]byte(`{"name": "x", "uuid": "00000000-0000-0000-0000-000000000000"}`))
	require.NoError(t, err)
	d2, err := Parse([]byte(`{"uuid": "00000000-0000-0000-0000-000000000000", "name": "x"}`))
	require.NoError(t, err)

	h1, err := d1.Hash()
	require.NoError(t, err)
	h2, err := d2.Hash()
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestCanonicalJSONRoundTrips(t *testing.T) {
	d := New("x")
	canon, err := d.CanonicalJSON()
	require.NoError(t, err)

	reparsed, err := Parse(canon)
	require.NoError(t, err)
	recanon, err := reparsed.CanonicalJSON()
	require.NoError(t, err)
	require.JSONEq(t, string(canon), string(recanon))
}
