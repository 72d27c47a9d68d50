package casper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casperlabs/casper-go/model/casper"
	"github.com/casperlabs/casper-go/utils/unittest"
)

func TestBlockAsMessage(t *testing.T) {

	t.Run("well-formed block normalizes", func(t *testing.T) {
		block := unittest.BlockFixture(unittest.WithMessageKind(casper.MessageBlock))
		message, err := block.AsMessage()
		require.NoError(t, err)
		assert.Equal(t, block.Hash, message.Hash)
		assert.Equal(t, block.ParentHash, message.ParentHash)
		assert.Equal(t, block.KeyBlockHash, message.KeyBlockHash)
		assert.Equal(t, block.Creator, message.Validator)
		assert.Equal(t, block.Round, message.Round)
		assert.Equal(t, casper.MessageBlock, message.Kind)
	})

	t.Run("missing hash fails", func(t *testing.T) {
		block := unittest.BlockFixture()
		block.Hash = casper.ZeroHash
		_, err := block.AsMessage()
		require.Error(t, err)
	})

	t.Run("missing key block hash fails", func(t *testing.T) {
		block := unittest.BlockFixture()
		block.KeyBlockHash = casper.ZeroHash
		_, err := block.AsMessage()
		require.Error(t, err)
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		block := unittest.BlockFixture()
		block.Kind = 99
		_, err := block.AsMessage()
		require.Error(t, err)
	})
}

func TestMessageKindString(t *testing.T) {
	assert.Equal(t, "lambda", casper.MessageLambda.String())
	assert.Equal(t, "lambda_response", casper.MessageLambdaResponse.String())
	assert.Equal(t, "omega", casper.MessageOmega.String())
	assert.Equal(t, "ballot", casper.MessageBallot.String())
	assert.Equal(t, "block", casper.MessageBlock.String())
	assert.False(t, casper.MessageKind(99).Valid())
}
