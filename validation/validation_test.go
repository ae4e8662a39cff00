// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/luxfi/holo"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/ribosome"
	"github.com/stretchr/testify/require"
)

func TestDefinitionForUnmappedEntryTypeIsNotImplemented(t *testing.T) {
	host := ribosome.NewFuncHost()
	_, err := DefinitionFor(context.Background(), host, "z", "post")
	require.ErrorIs(t, err, holo.ErrNotImplemented)
}

func TestDefinitionForDecodesChainEntries(t *testing.T) {
	host := ribosome.NewFuncHost()
	host.Register("z", ribosome.ExportGetValidationPackageForEntry, func(ctx context.Context, arg []byte) ([]byte, error) {
		return json.Marshal(packageDefWire{Kind: DefChainEntries.String()})
	})
	def, err := DefinitionFor(context.Background(), host, "z", "post")
	require.NoError(t, err)
	require.Equal(t, DefChainEntries, def.Kind)
}

func TestBuildPackageChainFullIncludesEntriesAndHeaders(t *testing.T) {
	store := chain.NewMemContentStore()
	c := chain.NewChain()

	e := entry.NewApp("post", []byte("hi"))
	require.NoError(t, store.Add(e.Content()))
	h := entry.NewHeader("post", e.Address(), nil, nil, time.Now().UTC())
	require.NoError(t, c.Push(h))

	pkg, err := BuildPackage(PackageDefinition{Kind: DefChainFull}, h, c, store)
	require.NoError(t, err)
	require.Len(t, pkg.ChainEntries, 1)
	require.Len(t, pkg.ChainHeaders, 1)
	require.NotNil(t, pkg.ChainHeader)
}

func TestValidateAppEntryValid(t *testing.T) {
	host := ribosome.NewFuncHost()
	host.Register("z", ribosome.ExportValidateAppEntry, func(ctx context.Context, arg []byte) ([]byte, error) {
		return nil, nil
	})

	e := entry.NewApp("post", []byte("hi"))
	data := ValidationData{Lifecycle: Chain, Action: Commit}
	err := Validate(context.Background(), host, "z", "post", e, data, nil)
	require.NoError(t, err)
}

func TestValidateAppEntryRejected(t *testing.T) {
	host := ribosome.NewFuncHost()
	host.Register("z", ribosome.ExportValidateAppEntry, func(ctx context.Context, arg []byte) ([]byte, error) {
		return json.Marshal(struct {
			Reason string `json:"reason"`
		}{Reason: "too long"})
	})

	e := entry.NewApp("post", []byte("hi"))
	data := ValidationData{Lifecycle: Chain, Action: Commit}
	err := Validate(context.Background(), host, "z", "post", e, data, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too long")
}

func TestValidateModifyRequiresPriorEntry(t *testing.T) {
	host := ribosome.NewFuncHost()
	host.Register("z", ribosome.ExportValidateAppEntry, func(ctx context.Context, arg []byte) ([]byte, error) {
		return nil, nil
	})

	e := entry.NewApp("post", []byte("hi"))
	data := ValidationData{Lifecycle: Chain, Action: Modify}
	err := Validate(context.Background(), host, "z", "post", e, data, nil)
	require.ErrorIs(t, err, ErrRequiresPriorEntry)

	data.Package.ChainEntries = []entry.Entry{e}
	require.NoError(t, Validate(context.Background(), host, "z", "post", e, data, nil))
}

func TestNotImplementedPolicyRejectsOnDHT(t *testing.T) {
	host := ribosome.NewFuncHost()
	e := entry.NewApp("post", []byte("hi"))
	data := ValidationData{Lifecycle: DHT, Action: Commit}
	err := Validate(context.Background(), host, "z", "post", e, data, nil)
	require.ErrorIs(t, err, holo.ErrNotImplemented)
}

func TestNotImplementedPolicyAcceptsSystemEntryOffDHT(t *testing.T) {
	host := ribosome.NewFuncHost()
	e := entry.NewDeletion(holo.HashContent([]byte("x")), "post")
	data := ValidationData{Lifecycle: Chain, Action: Delete}
	require.NoError(t, Validate(context.Background(), host, "z", "post", e, data, nil))
}

func TestValidateLinkAddUsesValidateLinkExport(t *testing.T) {
	host := ribosome.NewFuncHost()
	called := false
	host.Register("z", ribosome.ExportValidateLink, func(ctx context.Context, arg []byte) ([]byte, error) {
		called = true
		return nil, nil
	})

	e := entry.NewLinkAdd(holo.HashContent([]byte("b")), holo.HashContent([]byte("t")), "likes")
	data := ValidationData{Lifecycle: DHT, Action: Commit}
	require.NoError(t, Validate(context.Background(), host, "z", "likes", e, data, nil))
	require.True(t, called)
}
