// internal/domain/delivery/repository.go
package delivery

import "context"

// Repository stores an audit trail of delivery attempts. It is write-only:
// nothing is read back into poll state after a restart.
type Repository interface {
	Record(ctx context.Context, d *Delivery) error
}
