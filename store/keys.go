package store

import "fmt"

// Collection key templates. Every per-business collection is isolated by the
// business id suffix; BusinessesKey is the one global key (tenant directory).
const (
	keyPrefix = "labrise"

	BusinessesKey = keyPrefix + "_businesses"
)

func CarsKey(businessID string) string        { return collectionKey("cars", businessID) }
func ServicesKey(businessID string) string    { return collectionKey("services", businessID) }
func StaffKey(businessID string) string       { return collectionKey("staff", businessID) }
func CustomersKey(businessID string) string   { return collectionKey("customers", businessID) }
func QueueKey(businessID string) string       { return collectionKey("queue", businessID) }
func HistoryKey(businessID string) string     { return collectionKey("service_history", businessID) }
func ReminderLogKey(businessID string) string { return collectionKey("reminder_log", businessID) }

func collectionKey(entity, businessID string) string {
	return fmt.Sprintf("%s_%s_%s", keyPrefix, entity, businessID)
}
