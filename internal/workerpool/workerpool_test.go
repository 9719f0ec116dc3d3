package workerpool

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitReturnsNilWhenAllJobsSucceed(t *testing.T) {
	p := New(2)
	var n atomic.Int32
	for i := 0; i < 5; i++ {
		p.Go(func() error {
			n.Add(1)
			return nil
		})
	}
	assert.NoError(t, p.Wait())
	assert.EqualValues(t, 5, n.Load())
}

func TestWaitReturnsFirstError(t *testing.T) {
	p := New(1)
	p.Go(func() error { return fmt.Errorf("boom") })
	p.Go(func() error { return nil })
	assert.Error(t, p.Wait())
}

func TestGoRecoversPanic(t *testing.T) {
	p := New(1)
	p.Go(func() error { panic("kaboom") })
	assert.Error(t, p.Wait())
}
