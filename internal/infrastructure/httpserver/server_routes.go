package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api")
	requireJWT := s.middleware.JWT.RequireJWT()

	auth := api.Group("/auth")
	auth.POST("/login", s.login)

	users := api.Group("/users")
	users.POST("", s.registerUser)
	users.POST("/register", s.registerUser)
	users.GET("/:id", s.getUserProfile)
	users.PUT("/:id", s.updateUser, requireJWT)
	users.DELETE("/:id", s.deleteUser, requireJWT)
	users.GET("/:id/categories", s.listUserCategories)
	users.POST("/:id/categories/:categoryId", s.addUserToCategory, requireJWT)
	users.DELETE("/:id/categories/:categoryId", s.removeUserFromCategory, requireJWT)
	users.POST("/:id/favorites/:categoryId", s.addUserToCategory, requireJWT)
	users.DELETE("/:id/favorites/:categoryId", s.removeUserFromCategory, requireJWT)

	books := api.Group("/books")
	books.GET("", s.listBooks)
	books.GET("/:id", s.getBook)
	books.GET("/category/:categoryId", s.listBooksByCategory)
	books.POST("", s.createBook, requireJWT)
	books.POST("/bulk", s.createBooksBulk, requireJWT)
	books.PUT("/:id", s.updateBook, requireJWT)
	books.DELETE("/:id", s.deleteBook, requireJWT)
	books.POST("/:id/category/:categoryId", s.addCategoryToBook, requireJWT)
	books.DELETE("/:id/category/:categoryId", s.removeCategoryFromBook, requireJWT)

	categories := api.Group("/categories")
	categories.GET("", s.listCategories)
	categories.GET("/:id", s.getCategory)
	categories.GET("/user/:userId", s.listCategoriesByUser)
	categories.GET("/filter-by-users", s.findCategoriesByMinUsers)
	categories.GET("/filter-by-users-native", s.findCategoriesByMinUsersNative)
	categories.POST("", s.createCategory, requireJWT)
	categories.PUT("/:id", s.updateCategory, requireJWT)
	categories.DELETE("/:id", s.deleteCategory, requireJWT)

	responses := api.Group("/responses")
	responses.POST("/user/:userId/book/:bookId", s.createResponse, requireJWT)
	responses.GET("/user/:userId", s.listUserResponses)
	responses.GET("/book/:bookId", s.listBookResponses)
	responses.PUT("/:id", s.updateResponse, requireJWT)
	responses.DELETE("/:id", s.deleteResponse, requireJWT)

	visits := api.Group("/visits")
	visits.POST("/track", s.trackVisit)
	visits.GET("/stats", s.visitStats)

	logs := api.Group("/logs", requireJWT)
	logs.POST("/create", s.createLogExport)
	logs.GET("/status/:taskId", s.logExportStatus)
	logs.GET("/download/:taskId", s.downloadLogExport)
}
