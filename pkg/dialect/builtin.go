package dialect

func init() {
	Register(&Dialect{
		Name:            "presto",
		Aliases:         []string{"trino", "athena"},
		IdentifierQuote: '"',
		Description:     "Presto/Trino distributed SQL engine",
	})
	Register(&Dialect{
		Name:            "databricks",
		Aliases:         []string{"spark", "sparksql"},
		IdentifierQuote: '`',
		Description:     "Databricks SQL / Spark SQL",
	})
	Register(&Dialect{
		Name:            "hive",
		IdentifierQuote: '`',
		Description:     "Apache Hive",
	})
	Register(&Dialect{
		Name:            "mysql",
		IdentifierQuote: '`',
		Description:     "MySQL",
	})
	Register(&Dialect{
		Name:            "ansi",
		IdentifierQuote: '"',
		Description:     "ANSI standard SQL",
	})
}
