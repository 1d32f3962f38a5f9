package services

import (
	"encoding/json"
	"net/http"
	"time"

	Config "payledger/config"
	"payledger/dto"
	"payledger/utility/apiClient"
	"payledger/utility/constants"
	"payledger/utility/logger"

	"github.com/go-redis/redis/v7"
)

// Notifier ... Sink for user-facing events after a terminal state transition.
// Enqueue failures are the caller's to log, never to propagate.
type Notifier interface {
	Enqueue(event dto.NotificationEvent) error
}

// RedisNotifier ... Queues events on a redis list so delivery survives the
// request that produced it and failed deliveries stay observable.
type RedisNotifier struct {
	Client *redis.Client
	Config Config.Data
}

func NewRedisNotifier(config Config.Data) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
	})
	return &RedisNotifier{Client: client, Config: config}
}

// Enqueue ... Pushes the event onto the notification queue
func (n *RedisNotifier) Enqueue(event dto.NotificationEvent) error {
	event.EnqueuedAt = time.Now()
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.Client.LPush(constants.NOTIFICATION_QUEUE_KEY, payload).Err()
}

// NotificationWorker ... Drains the queue and delivers events to the external
// notification service with bounded retry.
type NotificationWorker struct {
	Client *redis.Client
	Config Config.Data
}

func NewNotificationWorker(notifier *RedisNotifier) *NotificationWorker {
	return &NotificationWorker{Client: notifier.Client, Config: notifier.Config}
}

// Run ... Blocks draining the queue. Meant to be started as a goroutine from
// main. An event that keeps failing past the retry budget is dropped with an
// error log, it never wedges the queue.
func (w *NotificationWorker) Run() {
	logger.Info("Notification worker started, draining %s", constants.NOTIFICATION_QUEUE_KEY)
	for {
		result, err := w.Client.BRPop(0, constants.NOTIFICATION_QUEUE_KEY).Result()
		if err != nil {
			logger.Error("Notification worker could not read queue : %s", err)
			time.Sleep(5 * time.Second)
			continue
		}
		// BRPop returns [key, value]
		if len(result) < 2 {
			continue
		}
		w.process([]byte(result[1]))
	}
}

func (w *NotificationWorker) process(payload []byte) {
	event := dto.NotificationEvent{}
	if err := json.Unmarshal(payload, &event); err != nil {
		logger.Error("Notification worker dropped undecodable event : %s", err)
		return
	}

	if err := w.deliver(event); err != nil {
		event.Attempts++
		maxRetries := w.Config.NotificationMaxRetries
		if maxRetries <= 0 {
			maxRetries = 3
		}
		if event.Attempts >= maxRetries {
			logger.Error("Notification for user %s dropped after %d attempts : %s", event.UserID, event.Attempts, err)
			return
		}
		logger.Warning("Notification delivery failed (attempt %d), requeueing : %s", event.Attempts, err)
		requeued, marshalErr := json.Marshal(event)
		if marshalErr != nil {
			logger.Error("Notification requeue marshal failed : %s", marshalErr)
			return
		}
		if pushErr := w.Client.LPush(constants.NOTIFICATION_QUEUE_KEY, requeued).Err(); pushErr != nil {
			logger.Error("Notification requeue failed : %s", pushErr)
		}
	}
}

func (w *NotificationWorker) deliver(event dto.NotificationEvent) error {
	client := apiClient.New(nil, w.Config, w.Config.NotificationServiceURL)
	request, err := client.NewRequest(http.MethodPost, "/events", event)
	if err != nil {
		return err
	}
	_, err = client.Do(request, nil)
	return err
}
