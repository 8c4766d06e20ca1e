// internal/workers/workitems/generate-rnas/models.go
package generaternas

import "accelerator-workers/internal/models"

type Input struct {
	StartupID int64 `json:"startupId"`
}

type Output struct {
	StartupID int64               `json:"startupId"`
	RNAs      []models.StartupRNA `json:"rnas"`
	Count     int                 `json:"count"`
}
