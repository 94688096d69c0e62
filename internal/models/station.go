package models

import "subwaymap.org/internal/network"

type Station struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewStation(st network.Station) Station {
	return Station{ID: int64(st.ID), Name: st.Name}
}
