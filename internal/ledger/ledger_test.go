// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package ledger_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
	"github.com/trustcampus/campusapps/internal/ledger"
	"github.com/trustcampus/campusapps/internal/programs"
	"github.com/trustcampus/campusapps/internal/testutil"
)

func newLedger(t *testing.T, opts ...ledger.Option) *ledger.Ledger {
	t.Helper()
	l, err := ledger.New(opts...)
	require.NoError(t, err)
	return l
}

func deploy(t *testing.T, l *ledger.Ledger, creator types.Address, program string) types.AppIndex {
	t.Helper()
	res, err := l.Deploy(context.Background(), creator, program)
	require.NoError(t, err)
	return res.AppID
}

func call(app types.AppIndex, sender types.Address, oc types.OnCompletion, args ...string) avm.Call {
	return avm.Call{AppID: app, Sender: sender, OnCompletion: oc, Args: testutil.Args(args...)}
}

func TestAttendanceScenario(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	creator := testutil.NewAccount(t)
	student := testutil.NewAccount(t)

	res, err := l.Deploy(ctx, creator, "attendance")
	require.NoError(t, err)
	app := res.AppID
	assert.Equal(t, types.AppIndex(ledger.FirstIndex), app)
	assert.Empty(t, res.Logs)

	res, err = l.Apply(ctx, call(app, student, types.OptInOC))
	require.NoError(t, err)
	assert.Empty(t, res.Logs)
	assert.True(t, l.IsOptedIn(app, student))

	res, err = l.Apply(ctx, call(app, student, types.NoOpOC, "MATH101", "1700000000"))
	require.NoError(t, err)
	require.Len(t, res.Logs, 1)
	want := append(append(append([]byte{}, student[:]...), "MATH101"...), "1700000000"...)
	assert.Equal(t, want, res.Logs[0])

	_, err = l.Apply(ctx, call(app, student, types.UpdateApplicationOC))
	require.ErrorIs(t, err, avm.ErrUnauthorized)
	assert.ErrorIs(t, err, avm.ErrRejected)

	logs := l.Logs(app)
	require.Len(t, logs, 1)
	assert.Equal(t, want, logs[0].Record)
	assert.Equal(t, uint64(3), l.Round())
}

var campusPrograms = []string{"attendance", "certificate", "feedback", "voting"}

func TestDeployRecordsCreator(t *testing.T) {
	l := newLedger(t)
	creator := testutil.NewAccount(t)

	for i, name := range campusPrograms {
		app := deploy(t, l, creator, name)
		assert.Equal(t, types.AppIndex(ledger.FirstIndex+i), app)

		info, err := l.App(app)
		require.NoError(t, err)
		assert.Equal(t, creator, info.Creator)
		assert.Equal(t, name, info.Program)
		assert.Equal(t, crypto.GetApplicationAddress(uint64(app)), info.Address)
	}
	assert.Len(t, l.Apps(), len(campusPrograms))
}

func TestDeployUnknownProgram(t *testing.T) {
	l := newLedger(t)
	_, err := l.Deploy(context.Background(), testutil.NewAccount(t), "lottery")
	require.ErrorIs(t, err, ledger.ErrUnknownProgram)
	assert.Zero(t, l.Round())
	assert.Empty(t, l.Apps())
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	for _, name := range campusPrograms {
		t.Run(name, func(t *testing.T) {
			l := newLedger(t)
			creator := testutil.NewAccount(t)
			other := testutil.NewAccount(t)
			app := deploy(t, l, creator, name)

			_, err := l.Apply(ctx, call(app, other, types.OptInOC))
			require.NoError(t, err)
			_, err = l.Apply(ctx, call(app, other, types.OptInOC))
			require.ErrorIs(t, err, ledger.ErrAlreadyOptedIn)

			_, err = l.Apply(ctx, call(app, other, types.CloseOutOC))
			require.NoError(t, err)
			assert.False(t, l.IsOptedIn(app, other))
			_, err = l.Apply(ctx, call(app, other, types.CloseOutOC))
			require.ErrorIs(t, err, ledger.ErrNotOptedIn)

			_, err = l.Apply(ctx, call(app, other, types.ClearStateOC))
			require.ErrorIs(t, err, avm.ErrRouting)

			_, err = l.Apply(ctx, call(app, other, types.DeleteApplicationOC))
			require.ErrorIs(t, err, avm.ErrUnauthorized)

			_, err = l.Apply(ctx, call(app, creator, types.UpdateApplicationOC))
			require.NoError(t, err)

			_, err = l.Apply(ctx, call(app, creator, types.DeleteApplicationOC))
			require.NoError(t, err)
			_, err = l.App(app)
			require.ErrorIs(t, err, ledger.ErrAppNotFound)

			_, err = l.Apply(ctx, call(app, creator, types.NoOpOC))
			require.ErrorIs(t, err, ledger.ErrAppNotFound)
		})
	}
}

func TestUpdateSwapsProgram(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	creator := testutil.NewAccount(t)
	app := deploy(t, l, creator, "feedback")

	_, err := l.Submit(ctx, ledger.Request{Call: call(app, creator, types.UpdateApplicationOC), Program: "attendance"})
	require.NoError(t, err)

	info, err := l.App(app)
	require.NoError(t, err)
	assert.Equal(t, "attendance", info.Program)
	assert.Equal(t, creator, info.Creator, "update must not touch the creator")

	res, err := l.Apply(ctx, call(app, creator, types.NoOpOC, "CS50", "1700000001"))
	require.NoError(t, err)
	require.Len(t, res.Logs, 1)

	_, err = l.Submit(ctx, ledger.Request{Call: call(app, creator, types.UpdateApplicationOC), Program: "lottery"})
	require.ErrorIs(t, err, ledger.ErrUnknownProgram)
}

func TestRejectedCallLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	app := deploy(t, l, testutil.NewAccount(t), "attendance")
	round := l.Round()

	_, err := l.Apply(ctx, call(app, testutil.NewAccount(t), types.NoOpOC, "MATH101"))
	require.ErrorIs(t, err, avm.ErrShape)

	assert.Equal(t, round, l.Round())
	assert.Empty(t, l.Logs(app))
}

func TestVoting(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	voter := testutil.NewAccount(t)
	app := deploy(t, l, testutil.NewAccount(t), "voting")

	res, err := l.Apply(ctx, call(app, voter, types.NoOpOC, "create_proposal", "P1", "Library hours", "1700086400"))
	require.NoError(t, err)
	assert.Equal(t, []byte("PROPOSAL:P1:Library hours:1700086400"), res.Logs[0])

	res, err = l.Apply(ctx, call(app, voter, types.NoOpOC, "cast_vote", "P1", "yes"))
	require.NoError(t, err)
	assert.Equal(t, append([]byte("VOTE:P1:yes:FROM:"), voter[:]...), res.Logs[0])

	_, err = l.Apply(ctx, call(app, voter, types.NoOpOC, "tally"))
	require.ErrorIs(t, err, avm.ErrRouting)

	_, err = l.Apply(ctx, call(app, voter, types.NoOpOC))
	require.ErrorIs(t, err, avm.ErrRouting)

	_, err = l.Apply(ctx, call(app, voter, types.NoOpOC, "cast_vote", "P1"))
	require.ErrorIs(t, err, avm.ErrShape)

	assert.Len(t, l.Logs(app), 2)
}

func TestFeedback(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	student := testutil.NewAccount(t)
	app := deploy(t, l, testutil.NewAccount(t), "feedback")

	res, err := l.Apply(ctx, call(app, student, types.NoOpOC, "MATH101", "T-9", "Qm123"))
	require.NoError(t, err)
	require.Len(t, res.Logs, 1)

	ev, err := event.ParseFeedback(res.Logs[0])
	require.NoError(t, err)
	assert.Equal(t, student, ev.Sender)
	assert.Equal(t, []byte("T-9"), ev.TeacherID)
}

func TestCertificateMint(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	creator := testutil.NewAccount(t)
	recipient := testutil.NewAccount(t)
	app := deploy(t, l, creator, "certificate")
	appAddr := crypto.GetApplicationAddress(uint64(app))

	res, err := l.Apply(ctx, avm.Call{
		AppID:        app,
		Sender:       creator,
		OnCompletion: types.NoOpOC,
		Args:         [][]byte{recipient[:], []byte("QmDegree")},
	})
	require.NoError(t, err)

	require.Len(t, res.InnerTxns, 2)
	assert.Equal(t, types.AssetConfigTx, res.InnerTxns[0].Type)
	assert.Equal(t, types.AssetTransferTx, res.InnerTxns[1].Type)
	require.Len(t, res.CreatedAssets, 1)
	assetID := res.CreatedAssets[0]
	assert.Equal(t, types.AssetIndex(ledger.FirstIndex+1), assetID)

	asset, err := l.Asset(assetID)
	require.NoError(t, err)
	assert.Equal(t, appAddr, asset.Creator)
	assert.Equal(t, uint64(1), asset.Params.Total)
	assert.Zero(t, asset.Params.Decimals)
	assert.True(t, asset.Params.DefaultFrozen)
	assert.Equal(t, "ipfs://QmDegree", asset.Params.URL)
	assert.Equal(t, appAddr, asset.Params.Clawback)

	held, ok := l.Holding(recipient, assetID)
	require.True(t, ok)
	assert.Equal(t, ledger.Holding{Amount: 1, Frozen: true}, held)

	appHeld, ok := l.Holding(appAddr, assetID)
	require.True(t, ok)
	assert.Zero(t, appHeld.Amount)

	require.Len(t, res.Logs, 1)
	assert.Equal(t, event.Certificate(assetID, []byte("QmDegree"), recipient), res.Logs[0])
}

func TestCertificateBadRecipient(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	creator := testutil.NewAccount(t)
	app := deploy(t, l, creator, "certificate")

	_, err := l.Apply(ctx, call(app, creator, types.NoOpOC, "bob", "QmDegree"))
	require.ErrorIs(t, err, avm.ErrShape)
	_, err = l.Asset(ledger.FirstIndex + 1)
	require.ErrorIs(t, err, ledger.ErrAssetNotFound)
}

// overdraw creates an asset and then tries to move more units than exist.
type overdraw struct{}

func (overdraw) Name() string { return "overdraw" }

func (overdraw) Approve(ctx context.Context, env *avm.Env) error {
	if env.Call.IsDeployment() {
		return nil
	}
	if err := env.Log([]byte("before")); err != nil {
		return err
	}
	created, err := env.SubmitInner(ctx, types.Transaction{
		Type: types.AssetConfigTx,
		AssetConfigTxnFields: types.AssetConfigTxnFields{
			AssetParams: types.AssetParams{Total: 1, UnitName: "X"},
		},
	})
	if err != nil {
		return err
	}
	_, err = env.SubmitInner(ctx, types.Transaction{
		Type: types.AssetTransferTx,
		AssetTransferTxnFields: types.AssetTransferTxnFields{
			XferAsset:     created.CreatedAssetID,
			AssetAmount:   2,
			AssetReceiver: env.Call.Sender,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %w", avm.ErrProtocol, err)
	}
	return nil
}

func TestFailedInnerRollsBackEverything(t *testing.T) {
	programs.Register("overdraw", func(programs.Options) avm.Program { return overdraw{} })

	ctx := context.Background()
	l := newLedger(t)
	sender := testutil.NewAccount(t)
	app := deploy(t, l, sender, "overdraw")
	round := l.Round()

	_, err := l.Apply(ctx, call(app, sender, types.NoOpOC))
	require.ErrorIs(t, err, avm.ErrProtocol)
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	assert.Equal(t, round, l.Round())
	assert.Empty(t, l.Logs(app))
	_, err = l.Asset(ledger.FirstIndex + 1)
	require.ErrorIs(t, err, ledger.ErrAssetNotFound)

	// The id the failed call allocated is handed out again.
	next := deploy(t, l, sender, "attendance")
	assert.Equal(t, types.AppIndex(ledger.FirstIndex+1), next)
}

func TestHostLimits(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	sender := testutil.NewAccount(t)
	app := deploy(t, l, sender, "attendance")

	args := make([][]byte, avm.MaxAppArgs+1)
	for i := range args {
		args[i] = []byte("a")
	}
	_, err := l.Apply(ctx, avm.Call{AppID: app, Sender: sender, Args: args})
	require.ErrorIs(t, err, ledger.ErrLimitExceeded)

	big := bytes.Repeat([]byte("x"), avm.MaxAppTotalArgLen)
	_, err = l.Apply(ctx, avm.Call{AppID: app, Sender: sender, Args: [][]byte{big, []byte("1")}})
	require.ErrorIs(t, err, ledger.ErrLimitExceeded)

	// A record over the log budget is refused by the host.
	_, err = l.Apply(ctx, avm.Call{AppID: app, Sender: sender, Args: [][]byte{bytes.Repeat([]byte("c"), avm.MaxLogSize), []byte("1")}})
	require.ErrorIs(t, err, ledger.ErrLimitExceeded)
	assert.Empty(t, l.Logs(app))
}

func TestApplyTransaction(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	creator := testutil.NewAccount(t)

	create := avm.Call{Sender: creator}.Transaction()
	create.ApprovalProgram = []byte("attendance")
	res, err := l.ApplyTransaction(ctx, create)
	require.NoError(t, err)

	checkIn := call(res.AppID, creator, types.NoOpOC, "BIO200", "1700000002").Transaction()
	res, err = l.ApplyTransaction(ctx, checkIn)
	require.NoError(t, err)
	assert.Len(t, res.Logs, 1)
	assert.NotEmpty(t, res.TxID)

	_, err = l.ApplyTransaction(ctx, types.Transaction{Type: types.PaymentTx})
	assert.Error(t, err)
}

func TestLogsAcrossApps(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	sender := testutil.NewAccount(t)
	a := deploy(t, l, sender, "attendance")
	f := deploy(t, l, sender, "feedback")

	_, err := l.Apply(ctx, call(a, sender, types.NoOpOC, "C1", "1"))
	require.NoError(t, err)
	_, err = l.Apply(ctx, call(f, sender, types.NoOpOC, "C1", "T1", "H"))
	require.NoError(t, err)
	_, err = l.Apply(ctx, call(a, sender, types.NoOpOC, "C1", "2"))
	require.NoError(t, err)

	all := l.Logs(0)
	require.Len(t, all, 3)
	for i, e := range all {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
	assert.Equal(t, []types.AppIndex{a, f, a}, []types.AppIndex{all[0].AppID, all[1].AppID, all[2].AppID})
	assert.Len(t, l.Logs(a), 2)
}

func TestLogsAreCopies(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	student := testutil.NewAccount(t)
	app := deploy(t, l, student, "attendance")

	res, err := l.Apply(ctx, call(app, student, types.NoOpOC, "MATH101", "1700000000"))
	require.NoError(t, err)
	require.Len(t, res.Logs, 1)
	want := append([]byte{}, res.Logs[0]...)

	res.Logs[0][0] ^= 0xff
	first := l.Logs(app)
	require.Len(t, first, 1)
	assert.Equal(t, want, first[0].Record)

	first[0].Record[40] = 'X'
	again := l.Logs(app)
	assert.Equal(t, want, again[0].Record)
	assert.Equal(t, want, l.Logs(0)[0].Record)
}

type recordingPersister struct {
	deltas []*ledger.Delta
	fail   error
}

func (p *recordingPersister) Commit(_ context.Context, d *ledger.Delta) error {
	if p.fail != nil {
		return p.fail
	}
	p.deltas = append(p.deltas, d)
	return nil
}

func TestPersisterSeesEveryCommit(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	l := newLedger(t, ledger.WithPersister(p))
	sender := testutil.NewAccount(t)

	app := deploy(t, l, sender, "attendance")
	_, err := l.Apply(ctx, call(app, sender, types.OptInOC))
	require.NoError(t, err)
	_, err = l.Apply(ctx, call(app, sender, types.NoOpOC, "C1", "1"))
	require.NoError(t, err)
	_, err = l.Apply(ctx, call(app, sender, types.NoOpOC, "C1"))
	require.Error(t, err)

	require.Len(t, p.deltas, 3)
	require.NotNil(t, p.deltas[0].CreatedApp)
	assert.Equal(t, "attendance", p.deltas[0].CreatedApp.Program)
	assert.Equal(t, []ledger.LocalState{{App: app, Account: sender}}, p.deltas[1].OptedIn)
	require.Len(t, p.deltas[2].Logs, 1)
	assert.Equal(t, uint64(1), p.deltas[2].Logs[0].Seq)
}

func TestPersisterFailureAbortsCall(t *testing.T) {
	ctx := context.Background()
	p := &recordingPersister{}
	l := newLedger(t, ledger.WithPersister(p))
	sender := testutil.NewAccount(t)
	app := deploy(t, l, sender, "attendance")

	p.fail = errors.New("disk full")
	_, err := l.Apply(ctx, call(app, sender, types.NoOpOC, "C1", "1"))
	require.ErrorIs(t, err, ledger.ErrPersist)

	assert.Equal(t, uint64(1), l.Round())
	assert.Empty(t, l.Logs(app))
}

func TestRestoreFromSnapshot(t *testing.T) {
	creator := testutil.NewAccount(t)
	student := testutil.NewAccount(t)
	snap := &ledger.Snapshot{
		Round:     7,
		NextIndex: 1003,
		Apps:      []ledger.AppRecord{{ID: 1000, Program: "attendance", Creator: creator}},
		OptIns:    []ledger.LocalState{{App: 1000, Account: student}},
		Logs:      []ledger.LogEntry{{Seq: 4, Round: 6, AppID: 1000, Record: []byte("r")}},
	}
	l := newLedger(t, ledger.WithSnapshot(snap))

	assert.Equal(t, uint64(7), l.Round())
	assert.True(t, l.IsOptedIn(1000, student))

	res, err := l.Apply(context.Background(), call(1000, student, types.NoOpOC, "C1", "1"))
	require.NoError(t, err)
	assert.Equal(t, uint64(8), res.Round)

	logs := l.Logs(1000)
	require.Len(t, logs, 2)
	assert.Equal(t, uint64(5), logs[1].Seq)

	// Creator identity survives the restore.
	_, err = l.Apply(context.Background(), call(1000, student, types.DeleteApplicationOC))
	require.ErrorIs(t, err, avm.ErrUnauthorized)

	next := deploy(t, l, creator, "voting")
	assert.Equal(t, types.AppIndex(1003), next)
}
