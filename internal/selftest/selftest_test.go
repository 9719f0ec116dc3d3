package selftest

import (
	"testing"

	"github.com/arangodb-helper/graphutils/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestRunPasses(t *testing.T) {
	assert.NoError(t, Run(logging.Nop{}))
}
