package rules

// Template bodies for the generated Python. Each renders one function; the
// synthesizer stitches them into artifacts and aggregates the rule's
// import and dependency lists.

const fallbackTemplate = `def {{.Func}}(*args, **kwargs):
    """{{.Name}} ({{.Kind}}) is not yet supported by the converter."""
    raise NotImplementedError(
        "component kind '{{.Kind}}' for '{{.Name}}' is not supported yet"
    )
`

const relationalSourceTemplate = `def read_{{.Func}}(engine, query=None, table_name=None):
    """Read rows for source component: {{.Name}}"""
    if query is None and table_name is None:
        raise ValueError("either query or table_name is required")
    if query is not None:
        return pd.read_sql(query, engine)
    return pd.read_sql_table(table_name, engine)
`

const relationalDestinationTemplate = `def write_{{.Func}}(df, engine, table_name, if_exists="append"):
    """Write rows for destination component: {{.Name}}"""
    df.to_sql(table_name, engine, if_exists=if_exists, index=False)
    return len(df)
`

const flatFileSourceTemplate = `def read_{{.Func}}(file_path, delimiter=",", encoding="utf-8"):
    """Read flat file for source component: {{.Name}}"""
    return pd.read_csv(file_path, sep=delimiter, encoding=encoding)
`

const flatFileDestinationTemplate = `def write_{{.Func}}(df, file_path, delimiter=",", encoding="utf-8"):
    """Write flat file for destination component: {{.Name}}"""
    df.to_csv(file_path, sep=delimiter, encoding=encoding, index=False)
    return len(df)
`

const excelSourceTemplate = `def read_{{.Func}}(file_path, sheet_name=0):
    """Read spreadsheet for source component: {{.Name}}"""
    return pd.read_excel(file_path, sheet_name=sheet_name)
`

const excelDestinationTemplate = `def write_{{.Func}}(df, file_path, sheet_name="Sheet1"):
    """Write spreadsheet for destination component: {{.Name}}"""
    df.to_excel(file_path, sheet_name=sheet_name, index=False)
    return len(df)
`

const xmlSourceTemplate = `def read_{{.Func}}(file_path, record_tag):
    """Read XML document for source component: {{.Name}}"""
    tree = ET.parse(file_path)
    rows = [
        {child.tag: child.text for child in record}
        for record in tree.getroot().iter(record_tag)
    ]
    return pd.DataFrame(rows)
`

const rawFileSourceTemplate = `def read_{{.Func}}(file_path):
    """Read raw file for source component: {{.Name}}"""
    return pd.read_pickle(file_path)
`

const rawFileDestinationTemplate = `def write_{{.Func}}(df, file_path):
    """Write raw file for destination component: {{.Name}}"""
    df.to_pickle(file_path)
    return len(df)
`

const recordsetDestinationTemplate = `def write_{{.Func}}(df, recordsets, name="{{.Name}}"):
    """Capture rows in an in-memory recordset: {{.Name}}"""
    recordsets[name] = df.copy()
    return len(df)
`

const derivedColumnTemplate = `def apply_{{.Func}}(df):
    """Derived column transform: {{.Name}}"""
{{- if .Expressions}}
{{- range $col, $expr := .Expressions}}
    df[{{printf "%q" $col}}] = df.eval({{printf "%q" $expr}})
{{- end}}
{{- else}}
    # no column expressions declared on this component
    pass
{{- end}}
    return df
`

const dataConversionTemplate = `def apply_{{.Func}}(df, type_mappings):
    """Data conversion transform: {{.Name}}"""
    for column, dtype in type_mappings.items():
        df[column] = df[column].astype(dtype)
    return df
`

const lookupTemplate = `def apply_{{.Func}}(df, lookup_df, left_on, right_on, how="left"):
    """Lookup transform: {{.Name}}"""
    return df.merge(lookup_df, left_on=left_on, right_on=right_on, how=how)
`

const mergeJoinTemplate = `def apply_{{.Func}}(left_df, right_df, on, how="inner"):
    """Merge join transform: {{.Name}}"""
    return left_df.merge(right_df, on=on, how=how)
`

const mergeTemplate = `def apply_{{.Func}}(first_df, second_df):
    """Merge transform (sorted union): {{.Name}}"""
    return pd.concat([first_df, second_df]).sort_index(kind="stable")
`

const unionAllTemplate = `def apply_{{.Func}}(*frames):
    """Union-all transform: {{.Name}}"""
    return pd.concat(frames, ignore_index=True)
`

const sortTemplate = `def apply_{{.Func}}(df, sort_columns, ascending=True):
    """Sort transform: {{.Name}}"""
    return df.sort_values(by=sort_columns, ascending=ascending)
`

const aggregateTemplate = `def apply_{{.Func}}(df, group_columns, agg_functions):
    """Aggregate transform: {{.Name}}"""
    return df.groupby(group_columns).agg(agg_functions).reset_index()
`

const conditionalSplitTemplate = `def apply_{{.Func}}(df, conditions):
    """Conditional split transform: {{.Name}}

    conditions maps an output name to a pandas query expression; rows not
    matching any condition land in the default output.
    """
    outputs = {}
    remaining = df
    for name, condition in conditions.items():
        matched = remaining.query(condition)
        outputs[name] = matched
        remaining = remaining.drop(matched.index)
    outputs["default"] = remaining
    return outputs
`

const multicastTemplate = `def apply_{{.Func}}(df, output_count):
    """Multicast transform: {{.Name}}"""
    return [df.copy() for _ in range(output_count)]
`

const rowCountTemplate = `def apply_{{.Func}}(df, counters, name="{{.Name}}"):
    """Row count transform: {{.Name}}"""
    counters[name] = len(df)
    return df
`

const copyColumnTemplate = `def apply_{{.Func}}(df, column_pairs):
    """Copy column transform: {{.Name}}

    column_pairs maps source column name to new column name.
    """
    for source, target in column_pairs.items():
        df[target] = df[source]
    return df
`

const characterMapTemplate = `def apply_{{.Func}}(df, columns, operation="upper"):
    """Character map transform: {{.Name}}"""
    for column in columns:
        if operation == "upper":
            df[column] = df[column].str.upper()
        elif operation == "lower":
            df[column] = df[column].str.lower()
    return df
`

const oledbCommandTemplate = `def apply_{{.Func}}(df, engine, statement):
    """Per-row command transform: {{.Name}}"""
    with engine.begin() as conn:
        for row in df.itertuples(index=False):
            conn.execute(sqlalchemy.text(statement), row._asdict())
    return df
`

const scriptComponentTemplate = `def apply_{{.Func}}(df):
    """Script component: {{.Name}}

    The original package ran custom script code here; port it manually.
    """
    raise NotImplementedError("script component '{{.Name}}' must be ported by hand")
`

const relationalConnectionTemplate = `def connect_{{.Func}}():
    """Create engine for connection manager: {{.Name}} ({{.Provider}})"""
    connection_string = {{printf "%q" .ConnectionString}}
    return sqlalchemy.create_engine(connection_string)
`

const flatFileConnectionTemplate = `def open_{{.Func}}():
    """Resolve file path for connection manager: {{.Name}}"""
    return {{printf "%q" .ConnectionString}}
`

const spreadsheetConnectionTemplate = `def open_{{.Func}}():
    """Resolve workbook path for connection manager: {{.Name}}"""
    return {{printf "%q" .ConnectionString}}
`

const markupConnectionTemplate = `def open_{{.Func}}():
    """Resolve XML document path for connection manager: {{.Name}}"""
    return {{printf "%q" .ConnectionString}}
`

const webConnectionTemplate = `def connect_{{.Func}}():
    """Create HTTP session for connection manager: {{.Name}}"""
    session = requests.Session()
    session.base_url = {{printf "%q" .ConnectionString}}
    return session
`

const sqlTaskTemplate = `def execute_{{.Func}}(engine):
    """Execute SQL task: {{.Name}}"""
    statement = {{printf "%q" (index .Properties "sql_statement")}}
    with engine.begin() as conn:
        result = conn.execute(sqlalchemy.text(statement))
{{- if eq (index .Properties "result_type") "ResultSetType_SingleRow"}}
        return result.fetchone()
{{- else}}
        return result.rowcount
{{- end}}
`

const genericTaskTemplate = `def execute_{{.Func}}():
    """Execute control flow task: {{.Name}} ({{.Kind}})"""
    raise NotImplementedError(
        "task kind '{{.Kind}}' for '{{.Name}}' is not supported yet"
    )
`
