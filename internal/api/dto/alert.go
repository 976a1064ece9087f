package dto

type AlertResponse struct {
	Vehicle string `json:"vehicle"`
	Item    string `json:"item"`
	Message string `json:"message"`
	Key     string `json:"key"`
}

type ListAlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}
