package sim

import (
	"encoding/json"
	"fmt"

	"github.com/xitongsys/parquet-go/schema"
)

const (
	TopicCustomerEvents   = "customer_events"
	TopicSaleEvents       = "sale_events"
	TopicDaySummaryEvents = "day_summary_events"
)

const (
	EventCustomerArrived    = "CustomerArrived"
	EventCustomerTurnedAway = "CustomerTurnedAway"
	EventSaleCompleted      = "SaleCompleted"
	EventOutOfStock         = "OutOfStock"
	EventDayStarted         = "DayStarted"
	EventDayEnded           = "DayEnded"
)

// LogEntry is one line of the bounded recent-event feed published in
// snapshots for HUD-style consumers.
type LogEntry struct {
	Type    string  `json:"type"`
	Message string  `json:"message"`
	Day     int     `json:"day"`
	Hour    float64 `json:"hour"`
}

// EventMessage is a serialized business event bound for a sink topic.
type EventMessage struct {
	Topic   string
	Message []byte
}

// CustomerEvent covers arrivals and turn-aways.
type CustomerEvent struct {
	EventType        string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	GameID           string  `json:"gameId" parquet:"name=gameId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Day              int32   `json:"day" parquet:"name=day,type=INT32"`
	Hour             float64 `json:"hour" parquet:"name=hour,type=DOUBLE"`
	CustomerID       int64   `json:"customerId" parquet:"name=customerId,type=INT64"`
	CustomerType     string  `json:"customerType" parquet:"name=customerType,type=BYTE_ARRAY,convertedtype=UTF8"`
	PreferredProduct string  `json:"preferredProduct" parquet:"name=preferredProduct,type=BYTE_ARRAY,convertedtype=UTF8"`
	QueueLength      int32   `json:"queueLength" parquet:"name=queueLength,type=INT32"`
}

// SaleEvent covers completed sales and stock-out losses.
type SaleEvent struct {
	EventType   string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	GameID      string  `json:"gameId" parquet:"name=gameId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Day         int32   `json:"day" parquet:"name=day,type=INT32"`
	Hour        float64 `json:"hour" parquet:"name=hour,type=DOUBLE"`
	CustomerID  int64   `json:"customerId" parquet:"name=customerId,type=INT64"`
	ProductCode string  `json:"productCode,omitempty" parquet:"name=productCode,type=BYTE_ARRAY,convertedtype=UTF8"`
	Amount      int64   `json:"amount" parquet:"name=amount,type=INT64"`
	Substituted bool    `json:"substituted" parquet:"name=substituted,type=BOOLEAN"`
	Money       int64   `json:"money" parquet:"name=money,type=INT64"`
}

// DaySummaryEvent is emitted once per business day on close.
type DaySummaryEvent struct {
	EventType       string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	GameID          string  `json:"gameId" parquet:"name=gameId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Day             int32   `json:"day" parquet:"name=day,type=INT32"`
	Revenue         int64   `json:"revenue" parquet:"name=revenue,type=INT64"`
	CustomersServed int32   `json:"customersServed" parquet:"name=customersServed,type=INT32"`
	CustomersLost   int32   `json:"customersLost" parquet:"name=customersLost,type=INT32"`
	Money           int64   `json:"money" parquet:"name=money,type=INT64"`
	Reputation      float64 `json:"reputation" parquet:"name=reputation,type=DOUBLE"`
}

// GetSchema returns the parquet schema handler for a topic.
func GetSchema(topic string) (*schema.SchemaHandler, error) {
	switch topic {
	case TopicCustomerEvents:
		return schema.NewSchemaHandlerFromStruct(new(CustomerEvent))
	case TopicSaleEvents:
		return schema.NewSchemaHandlerFromStruct(new(SaleEvent))
	case TopicDaySummaryEvents:
		return schema.NewSchemaHandlerFromStruct(new(DaySummaryEvent))
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}

func marshalEvent(topic string, event interface{}) (EventMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return EventMessage{}, fmt.Errorf("failed to serialize %s event: %w", topic, err)
	}
	return EventMessage{Topic: topic, Message: data}, nil
}
