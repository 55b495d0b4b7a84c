package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsRequestStatus(RequestStatusProcessing))
	assert.False(t, IsRequestStatus("done"))
	assert.True(t, IsReviewStatus(ReviewStatusApproved))
	assert.False(t, IsReviewStatus(RequestStatusNew))
	assert.True(t, IsVehicleClass(VehicleClassMinivan))
	assert.False(t, IsVehicleClass("limo"))
}
