package cron

import (
	"Journaly/internal/job"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterJobs(t *testing.T) {
	retry := job.NewDeliveryRetryJob(nil, nil, nil, 3, 10)

	assert.NoError(t, NewCronManager("", retry).RegisterJobs())
	assert.Error(t, NewCronManager("every now and then", retry).RegisterJobs())
}
