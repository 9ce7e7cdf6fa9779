package uid

import (
	"errors"
	"hash/fnv"
	"os"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ErrInvalidNode is returned when SNOWFLAKE_NODE is not a number in the node range.
var ErrInvalidNode = errors.New("uid: snowflake node must be between 0 and 1023")

// Snowflake generates int64 IDs using twitter-style snowflakes.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator whose node number comes from the
// SNOWFLAKE_NODE environment variable, falling back to a hash of the hostname.
func NewSnowflake() (*Snowflake, error) {
	n, err := nodeNumber()
	if err != nil {
		return nil, err
	}

	return NewSnowflakeNode(n)
}

// NewSnowflakeNode builds a generator bound to an explicit node number.
func NewSnowflakeNode(n int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(n)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns the next snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}

func nodeNumber() (int64, error) {
	maxNode := int64(-1 ^ (-1 << snowflake.NodeBits))

	if v := strings.TrimSpace(os.Getenv("SNOWFLAKE_NODE")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 || n > maxNode {
			return 0, ErrInvalidNode
		}
		return n, nil
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		return 0, nil
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(host))

	return int64(h.Sum32()) % (maxNode + 1), nil
}
