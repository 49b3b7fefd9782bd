package model

type Block struct {
	// Hash of the previous block in the hex format.
	PreviousHash string
	// Creation time in unix milliseconds.
	Timestamp int64
	// Transactions for this block. Their order is part of the hash.
	Transactions []*Transaction
	// Nonce is the miner's challenge for sealing the block.
	Nonce int64
	// Hash of this entire block in the hex string format.
	Hash string
}

// Blockchain is the ordered list of sealed blocks. Index 0 is always the
// genesis block and blocks are only ever appended.
type Blockchain struct {
	Blocks []*Block
}

// Create a new blockchain starting from the given genesis block.
func NewBlockChain(genesis *Block) *Blockchain {
	return &Blockchain{
		Blocks: []*Block{genesis},
	}
}

// Tail returns the most recently appended block.
func (bc *Blockchain) Tail() *Block {
	return bc.Blocks[len(bc.Blocks)-1]
}

func (bc *Blockchain) Append(b *Block) {
	bc.Blocks = append(bc.Blocks, b)
}

// Height is the index of the tail block; a chain holding only genesis has height 0.
func (bc *Blockchain) Height() int {
	return len(bc.Blocks) - 1
}
