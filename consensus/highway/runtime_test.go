package highway_test

import (
	"testing"
	"time"

	bclock "github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casperlabs/casper-go/consensus/highway"
	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/module"
	modclock "github.com/casperlabs/casper-go/module/clock"
	"github.com/casperlabs/casper-go/utils/unittest"
)

// testClock returns a tick clock of one second per tick, backed by a mock
// clock starting at tick zero.
func testClock() (module.TickClock, *bclock.Mock) {
	mock := bclock.NewMock()
	return modclock.NewTickClockWithClock(time.Second, mock), mock
}

func testConfig(bonded *casper.ValidatorID) highway.Config {
	return highway.Config{
		TickUnit:          time.Second,
		InitRoundExponent: 4, // 16-tick rounds
		EraDuration:       1024,
		BondedValidator:   bonded,
		IsSynced:          func() bool { return true },
	}
}

func TestInitAgenda(t *testing.T) {

	t.Run("fresh era schedules its first round", func(t *testing.T) {
		clk, _ := testClock()
		era := unittest.EraFixture()
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		agenda := rt.InitAgenda()
		require.Len(t, agenda, 1)
		assert.Equal(t, casper.Tick(0), agenda[0].Tick)
		assert.Equal(t, casper.Action{Kind: casper.ActionStartRound, Round: 0}, agenda[0].Action)
	})

	t.Run("mid-era start resumes the current round", func(t *testing.T) {
		clk, mock := testClock()
		mock.Add(40 * time.Second)
		era := unittest.EraFixture()
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		agenda := rt.InitAgenda()
		require.Len(t, agenda, 1)
		assert.Equal(t, casper.Tick(32), agenda[0].Tick)
		assert.Equal(t, casper.Action{Kind: casper.ActionStartRound, Round: 2}, agenda[0].Action)
	})

	t.Run("finished era has no agenda", func(t *testing.T) {
		clk, mock := testClock()
		mock.Add(16 * time.Second)
		era := unittest.EraFixture(unittest.WithEraBounds(0, 16))
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		assert.Empty(t, rt.InitAgenda())
	})
}

func TestValidate(t *testing.T) {
	clk, _ := testClock()
	era := unittest.EraFixture()
	rt := highway.NewRuntime(era, testConfig(nil), clk)

	t.Run("valid message passes", func(t *testing.T) {
		message := unittest.MessageFixture(unittest.WithMessageEra(era))
		require.NoError(t, rt.Validate(message))
	})

	t.Run("wrong era is rejected", func(t *testing.T) {
		message := unittest.MessageFixture()
		err := rt.Validate(message)
		require.Error(t, err)
		assert.True(t, highway.IsInvalidMessageError(err))
	})

	t.Run("unbonded validator is rejected", func(t *testing.T) {
		message := unittest.MessageFixture(
			unittest.WithMessageEra(era),
			unittest.WithMessageValidator(unittest.ValidatorIDFixture()),
		)
		err := rt.Validate(message)
		require.Error(t, err)
		assert.True(t, highway.IsInvalidMessageError(err))
	})

	t.Run("round outside era bounds is rejected", func(t *testing.T) {
		message := unittest.MessageFixture(
			unittest.WithMessageEra(era),
			unittest.WithMessageRound(64), // last round is 63
		)
		err := rt.Validate(message)
		require.Error(t, err)
		assert.True(t, highway.IsInvalidMessageError(err))
	})

	t.Run("self-parented message is rejected", func(t *testing.T) {
		message := unittest.MessageFixture(unittest.WithMessageEra(era))
		message.ParentHash = message.Hash
		err := rt.Validate(message)
		require.Error(t, err)
		assert.True(t, highway.IsInvalidMessageError(err))
	})

	t.Run("double round is rejected", func(t *testing.T) {
		first := unittest.MessageFixture(
			unittest.WithMessageEra(era),
			unittest.WithMessageKind(casper.MessageLambda),
			unittest.WithMessageRound(3),
		)
		require.NoError(t, rt.Validate(first))
		rt.HandleMessage(first)

		// re-validating the same message is fine
		require.NoError(t, rt.Validate(first))

		// a different message in the same slot is equivocation
		second := unittest.MessageFixture(
			unittest.WithMessageEra(era),
			unittest.WithMessageKind(casper.MessageLambda),
			unittest.WithMessageRound(3),
		)
		err := rt.Validate(second)
		require.Error(t, err)
		assert.True(t, highway.IsInvalidMessageError(err))
	})
}

func TestHandleMessage(t *testing.T) {

	t.Run("re-delivery produces no events", func(t *testing.T) {
		clk, _ := testClock()
		era := unittest.EraFixture(unittest.WithEraBounds(0, 16))
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		// a lambda in the era's single (and therefore final) round opens a
		// child era
		message := unittest.MessageFixture(
			unittest.WithMessageEra(era),
			unittest.WithMessageKind(casper.MessageLambda),
		)
		events := rt.HandleMessage(message)
		require.Len(t, events, 1)
		created, ok := events[0].(*casper.CreatedEra)
		require.True(t, ok)
		assert.Equal(t, message.Hash, created.Era.KeyBlockHash)
		assert.Equal(t, era.KeyBlockHash, created.Era.ParentKeyBlockHash)
		assert.Equal(t, era.EndTick, created.Era.StartTick)
		assert.Equal(t, era.EndTick+1024, created.Era.EndTick)

		assert.Empty(t, rt.HandleMessage(message))
	})

	t.Run("non-final round produces no era", func(t *testing.T) {
		clk, _ := testClock()
		era := unittest.EraFixture()
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		message := unittest.MessageFixture(
			unittest.WithMessageEra(era),
			unittest.WithMessageKind(casper.MessageLambda),
			unittest.WithMessageRound(5),
		)
		assert.Empty(t, rt.HandleMessage(message))
	})
}

func TestHandleAgenda_StartRound(t *testing.T) {

	t.Run("leader emits lambda and schedules follow-ups", func(t *testing.T) {
		clk, _ := testClock()
		validators := unittest.ValidatorListFixture(1)
		era := unittest.EraFixture(unittest.WithBondedValidators(validators))
		local := validators[0].ID
		rt := highway.NewRuntime(era, testConfig(&local), clk)

		events, next := rt.HandleAgenda(casper.Action{Kind: casper.ActionStartRound, Round: 0})
		require.Len(t, events, 1)
		lambda, ok := events[0].(*casper.CreatedLambdaMessage)
		require.True(t, ok)
		assert.Equal(t, casper.MessageLambda, lambda.Message.Kind)
		assert.Equal(t, local, lambda.Message.Validator)
		assert.Equal(t, era.KeyBlockHash, lambda.Message.KeyBlockHash)

		require.Len(t, next, 2)
		assert.Equal(t, casper.DelayedAction{
			Tick:   12,
			Action: casper.Action{Kind: casper.ActionCreateOmegaMessage, Round: 0},
		}, next[0])
		assert.Equal(t, casper.DelayedAction{
			Tick:   16,
			Action: casper.Action{Kind: casper.ActionStartRound, Round: 1},
		}, next[1])
	})

	t.Run("non-leader schedules a lambda response", func(t *testing.T) {
		clk, _ := testClock()
		validators := unittest.ValidatorListFixture(4)
		era := unittest.EraFixture(unittest.WithBondedValidators(validators))

		leader := highway.Leader(era, 0)
		var local casper.ValidatorID
		for _, v := range validators {
			if v.ID != leader {
				local = v.ID
				break
			}
		}
		rt := highway.NewRuntime(era, testConfig(&local), clk)

		events, next := rt.HandleAgenda(casper.Action{Kind: casper.ActionStartRound, Round: 0})
		assert.Empty(t, events)

		require.Len(t, next, 3)
		assert.Equal(t, casper.DelayedAction{
			Tick:   8,
			Action: casper.Action{Kind: casper.ActionCreateLambdaResponse, Round: 0},
		}, next[0])
		assert.Equal(t, casper.DelayedAction{
			Tick:   12,
			Action: casper.Action{Kind: casper.ActionCreateOmegaMessage, Round: 0},
		}, next[1])
		assert.Equal(t, casper.DelayedAction{
			Tick:   16,
			Action: casper.Action{Kind: casper.ActionStartRound, Round: 1},
		}, next[2])
	})

	t.Run("unbonded node only follows the round cadence", func(t *testing.T) {
		clk, _ := testClock()
		era := unittest.EraFixture()
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		events, next := rt.HandleAgenda(casper.Action{Kind: casper.ActionStartRound, Round: 0})
		assert.Empty(t, events)
		require.Len(t, next, 1)
		assert.Equal(t, casper.Action{Kind: casper.ActionStartRound, Round: 1}, next[0].Action)
	})

	t.Run("out-of-sync leader stays quiet", func(t *testing.T) {
		clk, _ := testClock()
		validators := unittest.ValidatorListFixture(1)
		era := unittest.EraFixture(unittest.WithBondedValidators(validators))
		local := validators[0].ID
		conf := testConfig(&local)
		conf.IsSynced = func() bool { return false }
		rt := highway.NewRuntime(era, conf, clk)

		events, _ := rt.HandleAgenda(casper.Action{Kind: casper.ActionStartRound, Round: 0})
		assert.Empty(t, events)
	})

	t.Run("final round lambda opens a child era", func(t *testing.T) {
		clk, _ := testClock()
		validators := unittest.ValidatorListFixture(1)
		era := unittest.EraFixture(
			unittest.WithEraBounds(0, 16),
			unittest.WithBondedValidators(validators),
		)
		local := validators[0].ID
		rt := highway.NewRuntime(era, testConfig(&local), clk)

		events, _ := rt.HandleAgenda(casper.Action{Kind: casper.ActionStartRound, Round: 0})
		require.Len(t, events, 2)
		_, ok := events[0].(*casper.CreatedLambdaMessage)
		require.True(t, ok)
		created, ok := events[1].(*casper.CreatedEra)
		require.True(t, ok)
		assert.Equal(t, era.KeyBlockHash, created.Era.ParentKeyBlockHash)
	})
}

func TestHandleAgenda_LambdaResponse(t *testing.T) {
	clk, _ := testClock()
	validators := unittest.ValidatorListFixture(4)
	era := unittest.EraFixture(unittest.WithBondedValidators(validators))

	leader := highway.Leader(era, 0)
	var local casper.ValidatorID
	for _, v := range validators {
		if v.ID != leader {
			local = v.ID
			break
		}
	}
	rt := highway.NewRuntime(era, testConfig(&local), clk)

	// without a lambda, the response action produces nothing
	events, next := rt.HandleAgenda(casper.Action{Kind: casper.ActionCreateLambdaResponse, Round: 0})
	assert.Empty(t, events)
	assert.Empty(t, next)

	lambda := unittest.MessageFixture(
		unittest.WithMessageEra(era),
		unittest.WithMessageKind(casper.MessageLambda),
		unittest.WithMessageValidator(leader),
	)
	rt.HandleMessage(lambda)

	events, _ = rt.HandleAgenda(casper.Action{Kind: casper.ActionCreateLambdaResponse, Round: 0})
	require.Len(t, events, 1)
	response, ok := events[0].(*casper.CreatedLambdaResponse)
	require.True(t, ok)
	assert.Equal(t, casper.MessageLambdaResponse, response.Message.Kind)
	assert.Equal(t, lambda.Hash, response.Message.ParentHash)
	assert.Equal(t, local, response.Message.Validator)
}

func TestHandleAgenda_OmegaMessage(t *testing.T) {

	t.Run("bonded validator emits an omega", func(t *testing.T) {
		clk, _ := testClock()
		validators := unittest.ValidatorListFixture(2)
		era := unittest.EraFixture(unittest.WithBondedValidators(validators))
		local := validators[1].ID
		rt := highway.NewRuntime(era, testConfig(&local), clk)

		events, next := rt.HandleAgenda(casper.Action{Kind: casper.ActionCreateOmegaMessage, Round: 7})
		assert.Empty(t, next)
		require.Len(t, events, 1)
		omega, ok := events[0].(*casper.CreatedOmegaMessage)
		require.True(t, ok)
		assert.Equal(t, casper.MessageOmega, omega.Message.Kind)
		assert.Equal(t, casper.Round(7), omega.Message.Round)
	})

	t.Run("read-only node emits nothing", func(t *testing.T) {
		clk, _ := testClock()
		era := unittest.EraFixture()
		rt := highway.NewRuntime(era, testConfig(nil), clk)

		events, _ := rt.HandleAgenda(casper.Action{Kind: casper.ActionCreateOmegaMessage, Round: 7})
		assert.Empty(t, events)
	})
}

func TestLeader_Deterministic(t *testing.T) {
	era := unittest.EraFixture()
	first := highway.Leader(era, 42)
	assert.Equal(t, first, highway.Leader(era, 42))
	assert.True(t, era.BondedValidators.Exists(first))
}
