// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chainfee

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zkforge/blobplan/pkg/log"
)

// Client wraps a JSON-RPC connection to one chain. It keeps the raw rpc
// client around for the non-standard eth_blobBaseFee call that ethclient
// does not surface.
type Client struct {
	endpoint string
	eth      *ethclient.Client
	rpc      *rpc.Client
}

// Dial connects to the endpoint. Each fetch is a single attempt; timeouts
// and cancellation ride on the caller's context.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	r, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to RPC endpoint %s", endpoint)
	}
	return &Client{
		endpoint: endpoint,
		eth:      ethclient.NewClient(r),
		rpc:      r,
	}, nil
}

// Endpoint returns the endpoint this client dialed.
func (c *Client) Endpoint() string { return c.endpoint }

// Close releases the underlying connection.
func (c *Client) Close() { c.rpc.Close() }

// SnapshotLatest builds a fee snapshot from the latest block. tipWei is the
// caller-chosen priority tip; blobOverrideWei, when non-nil, skips the
// on-chain blob base fee lookup. A chain without a blob base fee yields a
// snapshot with BlobBaseFeeWei == nil, not an error.
func (c *Client) SnapshotLatest(ctx context.Context, tipWei, blobOverrideWei *big.Int) (*Snapshot, error) {
	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chain ID")
	}
	header, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch latest header")
	}
	baseFee := header.BaseFee
	if baseFee == nil {
		// pre-EIP-1559 chain; the cost model surfaces this as a note
		baseFee = big.NewInt(0)
	}
	blobBaseFee := blobOverrideWei
	if blobBaseFee == nil {
		blobBaseFee = c.blobBaseFee(ctx)
	}
	snap := &Snapshot{
		ChainID:        chainID.Uint64(),
		Network:        NetworkName(chainID.Uint64()),
		BlockNumber:    header.Number.Uint64(),
		Timestamp:      time.Unix(int64(header.Time), 0).UTC(),
		BaseFeeWei:     baseFee,
		TipWei:         tipWei,
		BlobBaseFeeWei: blobBaseFee,
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	log.L().Debug("fetched fee snapshot",
		zap.Uint64("chainID", snap.ChainID),
		zap.Uint64("block", snap.BlockNumber),
		zap.String("baseFeeWei", snap.BaseFeeWei.String()),
		zap.Bool("blobBaseFee", snap.BlobBaseFeeWei != nil))
	return snap, nil
}

// blobBaseFee queries eth_blobBaseFee, which not every provider exposes.
// Returns nil when the call fails; callers degrade instead of aborting.
func (c *Client) blobBaseFee(ctx context.Context) *big.Int {
	var result hexutil.Big
	if err := c.rpc.CallContext(ctx, &result, "eth_blobBaseFee"); err != nil {
		log.L().Debug("blob base fee not available from RPC", zap.String("endpoint", c.endpoint), zap.Error(err))
		return nil
	}
	return (*big.Int)(&result)
}

// ChainID fetches the chain ID of the connected endpoint.
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fetch chain ID")
	}
	return chainID.Uint64(), nil
}

// HeaderByNumber fetches the header at the given height, or the latest when
// number is nil.
func (c *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	header, err := c.eth.HeaderByNumber(ctx, number)
	return header, errors.Wrapf(err, "failed to fetch header %v", number)
}

// TransactionReceipt fetches the receipt of a mined transaction.
func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	receipt, err := c.eth.TransactionReceipt(ctx, txHash)
	return receipt, errors.Wrapf(err, "failed to fetch receipt %s", txHash)
}

// TransactionByHash fetches a transaction by hash.
func (c *Client) TransactionByHash(ctx context.Context, txHash common.Hash) (*types.Transaction, bool, error) {
	tx, pending, err := c.eth.TransactionByHash(ctx, txHash)
	return tx, pending, errors.Wrapf(err, "failed to fetch transaction %s", txHash)
}

// SuggestGasPrice returns the node's suggested gas price.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := c.eth.SuggestGasPrice(ctx)
	return price, errors.Wrap(err, "failed to fetch suggested gas price")
}

// BlockNumber returns the current chain head.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	head, err := c.eth.BlockNumber(ctx)
	return head, errors.Wrap(err, "failed to fetch block number")
}
