package application

import "kashbill/internal/domain/entities"

// DefaultRoutes is the portfolio's route table: the bio is the landing page
// and any unknown path renders the not-found page.
func DefaultRoutes() []entities.Route {
	return []entities.Route{
		{Pattern: "/", Page: entities.PageBio},
		{Pattern: "/log", Page: entities.PageLog},
		{Pattern: "/works", Page: entities.PageWorks},
		{Pattern: "/lab", Page: entities.PageLab},
		{Pattern: entities.CatchAll, Page: entities.PageNotFound},
	}
}

// DefaultRouteTable validates DefaultRoutes.
func DefaultRouteTable() (*entities.RouteTable, error) {
	return entities.NewRouteTable(DefaultRoutes()...)
}
