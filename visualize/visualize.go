package visualize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Luismorlan/chain_in_go/model"
	"github.com/bradleyjkemp/memviz"
)

// We re-define the visualize model here so the graph only shows what a
// reader cares about, with shortened hashes and keys.
type transaction struct {
	from   string
	to     string
	amount float64
}

type block struct {
	height   int
	hash     string
	prevHash string
	nonce    int64
	txs      []transaction
	next     *block
}

// The string of public key and hash is just too long to render, instead we take only first 3 and last 3
// characters and replace the middle part with '...'. E.g. "abcdefghi" will be rendered as "abc...ghi"
func shortenString(s string) string {
	if len(s) < 9 {
		return s
	}
	return fmt.Sprintf("%s...%s", s[0:3], s[len(s)-3:])
}

func txToTx(tx *model.Transaction) transaction {
	from := "issued"
	if addr, ok := tx.Sender(); ok {
		from = shortenString(addr)
	}
	return transaction{
		from:   from,
		to:     shortenString(tx.To),
		amount: tx.Amount,
	}
}

func blockToBlock(b *model.Block, height int) *block {
	n := &block{
		height:   height,
		hash:     shortenString(b.Hash),
		prevHash: shortenString(b.PreviousHash),
		nonce:    b.Nonce,
	}
	for _, tx := range b.Transactions {
		n.txs = append(n.txs, txToTx(tx))
	}
	return n
}

// Return the last d+1 blocks linked from the oldest to the tail.
func constructData(blocks []model.Block, d int) *block {
	if len(blocks) == 0 {
		return nil
	}
	start := len(blocks) - 1 - d
	if start < 0 {
		start = 0
	}
	root := blockToBlock(&blocks[start], start)
	cur := root
	for i := start + 1; i < len(blocks); i++ {
		cur.next = blockToBlock(&blocks[i], i)
		cur = cur.next
	}
	return root
}

// Render writes a graphviz description of the tail block and the d blocks
// before it.
func Render(w io.Writer, blocks []model.Block, d int) {
	chain := constructData(blocks, d)
	memviz.Map(w, chain)
}

// RenderPNG renders the chain into dir and converts it with graphviz' dot,
// returning the png path. id keeps files of different ledgers apart.
func RenderPNG(blocks []model.Block, d int, id string, dir string) (string, error) {
	buf := &bytes.Buffer{}
	Render(buf, blocks, d)

	fileName := filepath.Join(dir, "chaindata-"+id)
	outputName := filepath.Join(dir, "rendered-chain-"+id+".png")
	if err := os.WriteFile(fileName, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tpng", fileName, "-o", outputName)
	if err := cmd.Run(); err != nil {
		return fileName, fmt.Errorf("graphviz failed, raw graph left at %s: %w", fileName, err)
	}
	return outputName, nil
}
