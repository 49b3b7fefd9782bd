package visualize

import (
	"bytes"
	"testing"

	"github.com/Luismorlan/chain_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlocks() []model.Block {
	return []model.Block{
		{PreviousHash: "0", Hash: "genesis-hash-value"},
		{PreviousHash: "genesis-hash-value", Hash: "00aa11bb22cc", Nonce: 7, Transactions: []*model.Transaction{
			model.NewTransfer("04abcdef0123", "04fedcba3210", 10),
			model.NewReward("04abcdef0123", 50),
		}},
		{PreviousHash: "00aa11bb22cc", Hash: "00dd33ee44ff", Nonce: 9},
	}
}

func TestShortenString(t *testing.T) {
	assert.Equal(t, "abc...ghi", shortenString("abcdefghi"))
	assert.Equal(t, "short", shortenString("short"))
}

func TestConstructData(t *testing.T) {
	root := constructData(testBlocks(), 1)
	require.NotNil(t, root)
	assert.Equal(t, 1, root.height)
	assert.Equal(t, int64(7), root.nonce)
	require.Len(t, root.txs, 2)
	assert.Equal(t, "04a...123", root.txs[0].from)
	assert.Equal(t, "issued", root.txs[1].from)
	require.NotNil(t, root.next)
	assert.Equal(t, 2, root.next.height)
	assert.Nil(t, root.next.next)

	all := constructData(testBlocks(), 100)
	assert.Equal(t, 0, all.height)

	assert.Nil(t, constructData(nil, 3))
}

func TestRender(t *testing.T) {
	buf := &bytes.Buffer{}
	Render(buf, testBlocks(), 2)
	assert.Contains(t, buf.String(), "digraph")
}
