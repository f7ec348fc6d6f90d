package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/auth"
	catalogctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/catalog"
	rentalctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/rental"
	staffctrl "github.com/karim076/Weektaken-LU-1-sub000/app/echoServer/controller/staff"
)

type C struct {
	Auth      *authctrl.Controller
	Catalog   *catalogctrl.Controller
	Rental    *rentalctrl.Controller
	Staff     *staffctrl.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Authenticated
	auth := e.Group("/v1")
	auth.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	auth.Use(ExtractActor())

	// Catalog
	auth.GET("/films", c.Catalog.List)
	auth.GET("/films/:id", c.Catalog.Detail)

	// Rentals (customer)
	auth.POST("/rentals", c.Rental.Create)
	auth.POST("/rentals/:id/pay", c.Rental.Pay)
	auth.POST("/rentals/:id/cancel", c.Rental.Cancel)
	auth.POST("/rentals/:id/extend", c.Rental.Extend)
	auth.GET("/rentals/my", c.Rental.MyRentals)

	// Staff
	staff := auth.Group("", StaffOnly())
	staff.POST("/films", c.Catalog.Create)
	staff.POST("/films/:id/copies", c.Catalog.AddCopies)
	staff.POST("/rentals/:id/checkout", c.Staff.Checkout)
	staff.POST("/rentals/:id/return", c.Staff.Return)
	staff.PATCH("/rentals/:id/due-date", c.Staff.UpdateDueDate)
	staff.PATCH("/rentals/:id/status", c.Staff.UpdateStatus)
	staff.GET("/staff/rentals/overdue", c.Staff.Overdue)
	staff.GET("/staff/rentals/pending", c.Staff.Pending)
	staff.GET("/staff/rentals/recent", c.Staff.Recent)
	staff.POST("/staff/customers/:id/return-all", c.Staff.ReturnAll)
}
