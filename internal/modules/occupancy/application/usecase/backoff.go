package usecase

import "time"

// reconnectDelay returns initial·2^attempt capped at ceiling.
func reconnectDelay(attempt int, initial, ceiling time.Duration) time.Duration {
	if initial <= 0 {
		initial = time.Second
	}
	if ceiling <= 0 {
		ceiling = 10 * time.Second
	}
	delay := initial
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= ceiling {
			return ceiling
		}
	}
	if delay > ceiling {
		return ceiling
	}
	return delay
}
