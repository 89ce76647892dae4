package sim

import "github.com/calleviva/trucksim/internal/models"

// Queue is the bounded FIFO line of waiting customers. It is owned by
// the controller; presentation layers only ever see snapshot copies.
type Queue struct {
	customers []models.Customer
	maxLen    int
}

func NewQueue(maxLen int) *Queue {
	return &Queue{maxLen: maxLen}
}

func (q *Queue) Len() int {
	return len(q.customers)
}

func (q *Queue) Full() bool {
	return len(q.customers) >= q.maxLen
}

// Enqueue appends the customer, reporting false when the queue is at
// capacity. A rejected enqueue is a turn-away and must be counted by
// the caller.
func (q *Queue) Enqueue(c models.Customer) bool {
	if q.Full() {
		return false
	}
	q.customers = append(q.customers, c)
	return true
}

// PeekFront returns a pointer to the head of the queue, or nil when
// empty. The pointer is only valid until the next mutation.
func (q *Queue) PeekFront() *models.Customer {
	if len(q.customers) == 0 {
		return nil
	}
	return &q.customers[0]
}

func (q *Queue) DequeueFront() (models.Customer, bool) {
	if len(q.customers) == 0 {
		return models.Customer{}, false
	}
	front := q.customers[0]
	q.customers = q.customers[1:]
	return front, true
}

// RemoveByID drops a customer anywhere in the line, for visitors that
// exit outside the normal front-of-queue service path.
func (q *Queue) RemoveByID(id int64) bool {
	for i, c := range q.customers {
		if c.ID == id {
			q.customers = append(q.customers[:i], q.customers[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns an independent copy of the waiting customers in
// service order.
func (q *Queue) Snapshot() []models.Customer {
	out := make([]models.Customer, len(q.customers))
	copy(out, q.customers)
	return out
}

func (q *Queue) Clear() {
	q.customers = nil
}
