package rabbitmq

import (
	"errors"
	"fmt"
	"time"

	"nutriplan-go-worker/utils"

	"github.com/streadway/amqp"
)

const reconnectInterval = 60 * time.Second

//Connection is the connection created
type Connection struct {
	name    string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	Err     chan error
}

var (
	connectionPool = make(map[string]*Connection)
)

//NewConnection returns the new connection object
func NewConnection(name string, queues []string) *Connection {
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		Queues: queues,
		Err:    make(chan error),
	}
	connectionPool[name] = c
	return c
}

//GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	var err error
	c.Conn, err = amqp.Dial(utils.EnvConfig.RabbitMQ.Domain)
	if err != nil {
		return fmt.Errorf("Error in creating rabbitmq connection with %s : %s", utils.EnvConfig.RabbitMQ.Domain, err.Error())
	}
	go func() {
		<-c.Conn.NotifyClose(make(chan *amqp.Error)) //Listen to NotifyClose
		c.Err <- errors.New("Connection Closed")
	}()
	c.Channel, err = c.Conn.Channel()
	if err != nil {
		return fmt.Errorf("Channel: %s", err)
	}
	return nil
}

func (c *Connection) BindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("error in declaring the queue %s", err)
		}
	}
	return nil
}

//Reconnect reconnects the connection
func (c *Connection) Reconnect() error {
	if err := c.Connect(); err != nil {
		return err
	}
	if err := c.BindQueue(); err != nil {
		return err
	}
	return nil
}

// Consume starts a consumer per queue with manual ack: a delivery stays unacked
// until the handler settles it with Settle, so a crash mid-job redelivers it.
func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := c.Channel.Consume(q, c.name, false, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		m[q] = deliveries
	}
	return m, nil
}

// HandleConsumedDeliveries runs fn over the queue's deliveries. When the
// connection closes, unacked messages return to the broker; it reconnects every
// reconnectInterval and hands fn the new delivery channel.
func (c *Connection) HandleConsumedDeliveries(q string, delivery <-chan amqp.Delivery, fn func(Connection, string, <-chan amqp.Delivery)) {
	fmt.Println("[HandleConsumedDeliveries]Delivery received")
	for {
		go fn(*c, q, delivery)
		if err := <-c.Err; err != nil {
			for {
				if err := c.Reconnect(); err != nil {
					fmt.Println("reconnect failed:", err.Error())
					time.Sleep(reconnectInterval)
					continue
				}

				deliveries, err := c.Consume()
				if err != nil {
					time.Sleep(reconnectInterval)
					fmt.Println("try again")
				} else {
					fmt.Println("try ok")
					delivery = deliveries[q]
					break
				}
			}
		}
	}
}

// Settle acks a handled delivery. A failed delivery is requeued on its first
// attempt only; a failure on redelivery drops it so a poison message cannot loop.
func Settle(d amqp.Delivery, err error) error {
	if err != nil {
		return d.Nack(false, !d.Redelivered)
	}
	return d.Ack(false)
}
