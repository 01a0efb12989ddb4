package pipeline

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChans(t *testing.T) {
	ecs := errorChans{}
	ec1 := &errorChan{}
	ec2 := &errorChan{}
	doneChan := make(chan struct{}, 2)
	go func() {
		ecs.add(ec1)
		doneChan <- struct{}{}
	}()
	go func() {
		ecs.add(ec2)
		doneChan <- struct{}{}
	}()
	<-doneChan
	<-doneChan
	assert.ElementsMatch(t, []*errorChan{ec1, ec2}, ecs.list)
}

func TestNewErrorChan(t *testing.T) {
	ec1 := newErrorChan("error chan", nil)
	assert.Equal(t, &errorChan{name: "error chan"}, ec1)
	c2 := make(chan error)
	ec2 := newErrorChan("error chan 2", c2)
	assert.Equal(t, &errorChan{name: "error chan 2", c: c2}, ec2)
}

func TestMergeErrorsAllNil(t *testing.T) {
	ec1 := newErrorChan("error chan", nil)
	ec2 := newErrorChan("error chan 2", nil)

	outErrorChan := mergeErrors(ec1, ec2)
	gotErr, open := <-outErrorChan
	assert.False(t, open)
	assert.Nil(t, gotErr)
}

func TestMergeErrors(t *testing.T) {
	chan1 := make(chan error)
	ec1 := newErrorChan("seed-to-soil", chan1)
	chan2 := make(chan error)
	ec2 := newErrorChan("soil-to-fertilizer", chan2)

	expectedError1 := errors.New("error 1")
	expectedError2 := errors.New("error 2")

	go func() {
		defer close(chan1)
		defer close(chan2)
		chan1 <- expectedError1
		chan2 <- expectedError2
	}()

	gotErrs := []error{}
	for err := range mergeErrors(ec1, ec2) {
		gotErrs = append(gotErrs, err)
	}
	sort.Slice(gotErrs, func(i, j int) bool {
		return gotErrs[i].Error() < gotErrs[j].Error()
	})

	assert.ErrorIs(t, gotErrs[0], expectedError1)
	assert.ErrorIs(t, gotErrs[1], expectedError2)
	assert.EqualError(t, gotErrs[0], "seed-to-soil: error 1")
}

func TestWaitForPipelineFirstError(t *testing.T) {
	chan1 := make(chan error, 1)
	chan1 <- errors.New("boom")
	close(chan1)

	err := waitForPipeline(newErrorChan("ok", nil), newErrorChan("failing", chan1))
	assert.EqualError(t, err, "failing: boom")
}
