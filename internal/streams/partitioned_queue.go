package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"
)

// PartitionedQueue routes messages to a fixed set of buffered channels by key.
// Messages with the same key always land in the same partition, in publish order.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	DefaultNumPartitions = 8
	DefaultBuffer        = 1024
)

func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = DefaultNumPartitions
	}
	if buffer < 0 {
		buffer = DefaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Partition returns the receive side of partition i.
func (queue *PartitionedQueue[T]) Partition(i int) <-chan T { return queue.partitions[i] }

// PartitionFor returns the partition index that key maps to.
func (queue *PartitionedQueue[T]) PartitionFor(key string) int {
	return partitionIndex(key, len(queue.partitions))
}

// Publish enqueues msg on the partition for partitionKey, blocking while that
// partition is full. It returns ctx.Err() if ctx ends first.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
