package blockchain

import (
	"context"
	"strconv"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/model"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// memoProgramID is the SPL Memo program, used to tag payment transfers with
// the server-issued nonce.
var memoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// TransferParams describes one exact transfer: AmountBase base units of Mint
// from From to To, optionally tagged with a memo. An empty or native Mint
// produces a plain SOL transfer; anything else an SPL token transfer.
type TransferParams struct {
	From       solana.PublicKey
	To         solana.PublicKey
	Mint       string
	AmountBase string
	Memo       string
}

// BuildTransfer assembles an unsigned transfer transaction with a fresh
// blockhash. For SPL tokens the recipient's associated token account is
// created in the same transaction when it does not exist yet.
func (c *Client) BuildTransfer(ctx context.Context, p TransferParams) (*solana.Transaction, error) {
	lamports, err := parseBaseAmount(p.AmountBase)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction
	if p.Mint == "" || p.Mint == model.NativeSOL {
		instructions = append(instructions,
			system.NewTransferInstruction(lamports, p.From, p.To).Build())
	} else {
		splIxs, err := c.splTransferInstructions(ctx, p, lamports)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, splIxs...)
	}

	if p.Memo != "" {
		instructions = append(instructions, memoInstruction(p.From, p.Memo))
	}

	blockhash, err := c.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(p.From))
	if err != nil {
		return nil, nlerr.Transaction("failed to build transfer transaction", "").WithCause(err)
	}
	return tx, nil
}

func (c *Client) splTransferInstructions(ctx context.Context, p TransferParams, amount uint64) ([]solana.Instruction, error) {
	mint, err := solana.PublicKeyFromBase58(p.Mint)
	if err != nil {
		return nil, nlerr.Validation("invalid token mint address", "mint")
	}

	source, _, err := solana.FindAssociatedTokenAddress(p.From, mint)
	if err != nil {
		return nil, nlerr.Transaction("failed to derive source token account", "").WithCause(err)
	}
	dest, _, err := solana.FindAssociatedTokenAddress(p.To, mint)
	if err != nil {
		return nil, nlerr.Transaction("failed to derive destination token account", "").WithCause(err)
	}

	var instructions []solana.Instruction
	exists, err := c.accountExists(ctx, dest)
	if err != nil {
		return nil, err
	}
	if !exists {
		instructions = append(instructions,
			associatedtokenaccount.NewCreateInstruction(p.From, p.To, mint).Build())
	}

	instructions = append(instructions,
		token.NewTransferInstruction(amount, source, dest, p.From, nil).Build())
	return instructions, nil
}

func (c *Client) accountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	out, err := c.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		if err == rpc.ErrNotFound {
			return false, nil
		}
		return false, nlerr.Network("failed to query account", 0, "rpc").WithCause(err)
	}
	return out.Value != nil, nil
}

func memoInstruction(signer solana.PublicKey, memo string) solana.Instruction {
	return solana.NewInstruction(
		memoProgramID,
		solana.AccountMetaSlice{solana.Meta(signer).SIGNER()},
		[]byte(memo),
	)
}

// parseBaseAmount converts a base-unit integer string into lamports,
// rejecting anything non-numeric, negative or beyond uint64.
func parseBaseAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, nlerr.Validation("invalid base amount: "+s, "amount")
	}
	return v, nil
}
