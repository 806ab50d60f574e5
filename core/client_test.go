package core

import (
	"github.com/defiweb/go-eth/rpc"
)

// The go-eth client must keep satisfying the surface the toolkit is
// written against, as must the test double the suite stands in for it.
var (
	_ RpcClient = (*rpc.Client)(nil)
	_ RpcClient = (*mockRpcClient)(nil)
)
